// Package repositories implements the MongoDB access for every collection.
// Lookups of an absent document return (nil, nil); callers decide whether
// that is an error. Infrastructure failures are wrapped with the collection
// and operation name.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
)

// ErrDuplicate is returned when a write violates a unique index.
var ErrDuplicate = errors.New("repositories: duplicate key")

func findOne[T any](ctx context.Context, col *mongo.Collection, filter interface{}) (*T, error) {
	defer metrics.ObserveDBQuery(col.Name(), "find_one", time.Now())

	var doc T
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: find one: %w", col.Name(), err)
	}
	return &doc, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	defer metrics.ObserveDBQuery(col.Name(), "find", time.Now())

	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", col.Name(), err)
	}

	docs := []*T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", col.Name(), err)
	}
	return docs, nil
}

// updateOne applies update to the document matched by filter and returns
// the document as it is after the update, or nil when nothing matched.
func updateOne[T any](ctx context.Context, col *mongo.Collection, filter, update interface{}) (*T, error) {
	defer metrics.ObserveDBQuery(col.Name(), "update", time.Now())

	var doc T
	err := col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case mongo.IsDuplicateKeyError(err):
		return nil, ErrDuplicate
	case err != nil:
		return nil, fmt.Errorf("%s: update: %w", col.Name(), err)
	}
	return &doc, nil
}

func insertOne(ctx context.Context, col *mongo.Collection, doc interface{}) (interface{}, error) {
	defer metrics.ObserveDBQuery(col.Name(), "insert", time.Now())

	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("%s: insert: %w", col.Name(), err)
	}
	return res.InsertedID, nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id interface{}) (bool, error) {
	defer metrics.ObserveDBQuery(col.Name(), "delete", time.Now())

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("%s: delete: %w", col.Name(), err)
	}
	return res.DeletedCount > 0, nil
}
