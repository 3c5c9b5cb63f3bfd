package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID converts a hex string to a Mongo ObjectID
func ParseObjectID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateOTP creates a numeric OTP of specified length
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	rand.New(rand.NewSource(time.Now().UnixNano()))

	otp := ""
	for i := 0; i < length; i++ {
		otp += fmt.Sprintf("%d", rand.Intn(10))
	}

	return otp
}

// GenerateOrderNumber creates a unique order number with timestamp
func GenerateOrderNumber() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	// Format: NH-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("NH-%s-%s-%s", datePart, timePart, randomPart)
}

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
