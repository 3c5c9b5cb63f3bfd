package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// CartLine is one (product, quantity) pairing inside the embedded cart
type CartLine struct {
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type DeliveryInfo struct {
	Contact             string `bson:"contact,omitempty" json:"contact,omitempty"`
	Country             string `bson:"country,omitempty" json:"country,omitempty"`
	FirstName           string `bson:"firstName,omitempty" json:"first_name,omitempty"`
	LastName            string `bson:"lastName,omitempty" json:"last_name,omitempty"`
	Address             string `bson:"address,omitempty" json:"address,omitempty"`
	Apartment           string `bson:"apartment,omitempty" json:"apartment,omitempty"`
	City                string `bson:"city,omitempty" json:"city,omitempty"`
	State               string `bson:"state,omitempty" json:"state,omitempty"`
	PinCode             string `bson:"pinCode,omitempty" json:"pin_code,omitempty"`
	Phone               string `bson:"phone,omitempty" json:"phone,omitempty"`
	SaveInfoForNextTime bool   `bson:"saveInfoForNextTime" json:"save_info_for_next_time"`
}

type User struct {
	Base            `bson:",inline"`
	Name            string       `bson:"name"`
	Email           string       `bson:"email"`
	Phone           *string      `bson:"phone,omitempty"`
	PasswordHash    string       `bson:"password"`
	IsVerified      bool         `bson:"isVerified"`
	Role            UserRole     `bson:"role"`
	Cart            []CartLine   `bson:"cart"`
	DeliveryInfo    DeliveryInfo `bson:"deliveryInfo"`
	ResetOTP        string       `bson:"resetOtp,omitempty"`
	ResetOTPExpires *time.Time   `bson:"resetOtpExpires,omitempty"`
}
