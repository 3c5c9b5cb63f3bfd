package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectID(t *testing.T) {
	id, err := ParseObjectID("68b1c2d3e4f5a6b7c8d9e0f1")
	require.NoError(t, err)
	assert.Equal(t, "68b1c2d3e4f5a6b7c8d9e0f1", id.Hex())

	_, err = ParseObjectID("nope")
	assert.Error(t, err)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-3", 1))
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP(6)
	assert.Len(t, otp, 6)
	for _, c := range otp {
		assert.True(t, c >= '0' && c <= '9')
	}

	// Non-positive lengths fall back to 6 digits
	assert.Len(t, GenerateOTP(0), 6)
}

func TestGenerateOrderNumber(t *testing.T) {
	number := GenerateOrderNumber()
	assert.True(t, strings.HasPrefix(number, "NH-"))
	assert.Len(t, strings.Split(number, "-"), 4)
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}
