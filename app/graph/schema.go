// Package graph declares the GraphQL schema of the sales desk and resolves
// every field through the services layer.
package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/salesdesk/app/services"
	gql "github.com/shashiranjanraj/salesdesk/pkg/graphql"
)

// NewSchema builds the Query and Mutation roots over svc.
func NewSchema(svc *services.Services) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: queryFields(svc),
	})
	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Mutation",
		Fields: mutationFields(svc),
	})
	return gql.NewSchema(query, mutation)
}
