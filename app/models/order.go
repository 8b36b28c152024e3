package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// LineItem is one product line of an order.
type LineItem struct {
	Product  primitive.ObjectID `bson:"id"       json:"id"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Order is a sale from a seller to one of their clients.
type Order struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items  []LineItem         `bson:"order"         json:"order"`
	Total  float64            `bson:"total"         json:"total"`
	Client primitive.ObjectID `bson:"client"        json:"client"`
	Seller primitive.ObjectID `bson:"seller"        json:"seller"`
	Status OrderStatus        `bson:"status"        json:"status"`
	Date   time.Time          `bson:"date"          json:"date"`
}
