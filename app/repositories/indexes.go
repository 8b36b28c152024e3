package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/salesdesk/pkg/database"
)

// Indexes lists the indexes each collection needs.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		database.Users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("email_unique").SetUnique(true)},
		},
		database.Products: {
			{Keys: bson.D{{Key: "name", Value: "text"}}, Options: options.Index().SetName("name_text")},
		},
		database.Clients: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("email_unique").SetUnique(true)},
			{Keys: bson.D{{Key: "seller", Value: 1}}, Options: options.Index().SetName("seller")},
		},
		database.Orders: {
			{Keys: bson.D{{Key: "seller", Value: 1}}, Options: options.Index().SetName("seller")},
			{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("status")},
		},
	}
}

// EnsureIndexes creates any missing index. Existing indexes with the same
// definition are left alone, so it is safe to run on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	var created []string
	for col, models := range Indexes() {
		names, err := db.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return created, fmt.Errorf("%s: create indexes: %w", col, err)
		}
		for _, n := range names {
			created = append(created, col+"."+n)
		}
	}
	return created, nil
}
