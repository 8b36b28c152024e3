package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/salesdesk/pkg/auth"
)

// callerID returns the authenticated user id carried by ctx.
func callerID(ctx context.Context) (primitive.ObjectID, error) {
	claims := auth.FromContext(ctx)
	if claims == nil {
		return primitive.NilObjectID, NotAuthorized()
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, NotAuthorized()
	}
	return id, nil
}

// lookup fetches the entity with the given hex id. A malformed id is
// reported the same way as an absent one.
func lookup[T any](ctx context.Context, entity, id string, fetch func(context.Context, primitive.ObjectID) (*T, error)) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NotFound(entity)
	}
	doc, err := fetch(ctx, oid)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, NotFound(entity)
	}
	return doc, nil
}

// authorize checks that the caller is owner and returns the caller id.
func authorize(ctx context.Context, owner primitive.ObjectID) (primitive.ObjectID, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return caller, err
	}
	if caller != owner {
		return primitive.NilObjectID, NotAuthorized()
	}
	return caller, nil
}

// Owned fetches an entity and checks the caller owns it, in that order: a
// missing entity is reported before a foreign one.
func Owned[T any](
	ctx context.Context,
	entity, id string,
	fetch func(context.Context, primitive.ObjectID) (*T, error),
	owner func(*T) primitive.ObjectID,
) (*T, error) {
	doc, err := lookup(ctx, entity, id, fetch)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(ctx, owner(doc)); err != nil {
		return nil, err
	}
	return doc, nil
}
