// Package models holds the documents stored in MongoDB. Field tags follow
// the collection layout; the GraphQL layer reads the same structs.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a seller account.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name"          json:"name"`
	Surname   string             `bson:"surname"       json:"surname"`
	Email     string             `bson:"email"         json:"email"`
	Password  string             `bson:"password"      json:"-"` // bcrypt hash, never serialised
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}
