package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a customer record owned by exactly one seller.
type Client struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"         json:"id"`
	Name        string             `bson:"name"                  json:"name"`
	Surname     string             `bson:"surname"               json:"surname"`
	Email       string             `bson:"email"                 json:"email"`
	Company     string             `bson:"company"               json:"company"`
	PhoneNumber *string            `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Seller      primitive.ObjectID `bson:"seller"                json:"seller"`
	CreatedAt   time.Time          `bson:"createdAt"             json:"createdAt"`
}
