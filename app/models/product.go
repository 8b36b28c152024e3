package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue entry with its available stock.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name"          json:"name"`
	Stock     int                `bson:"stock"         json:"stock"`
	Price     float64            `bson:"price"         json:"price"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}
