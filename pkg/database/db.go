// Package database opens the MongoDB connection used by the repositories.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	Users    = "users"
	Products = "products"
	Clients  = "clients"
	Orders   = "orders"
	Logs     = "logs"
)

// Connect opens a client for uri, configures the connection pool and
// verifies the primary is reachable. It returns an error instead of exiting
// so the caller can shut down gracefully.
func Connect(ctx context.Context, uri, name string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName("salesdesk").
		SetMaxPoolSize(25).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(2 * time.Minute).
		SetServerSelectionTimeout(timeout).
		SetTimeout(timeout)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("database: ping: %w", err)
	}

	return client, client.Database(name), nil
}

// Ping reports whether the deployment still answers.
func Ping(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}
