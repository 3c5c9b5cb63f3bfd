package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	UserID    primitive.ObjectID `bson:"userId" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

type Product struct {
	Base        `bson:",inline"`
	Name        string   `bson:"name"`
	Description string   `bson:"description"`
	Price       float64  `bson:"price"`
	Quantity    int      `bson:"quantity"`
	Category    string   `bson:"category"`
	ImageURL    string   `bson:"imageURL"`
	Rating      float64  `bson:"rating"`
	Reviews     []Review `bson:"reviews"`
}
