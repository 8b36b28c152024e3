// Package graphql serves a graphql-go schema over HTTP. It speaks the usual
// GraphQL-over-HTTP dialect: POST with a JSON body or GET with query
// parameters, always answering 200 with a {data, errors} envelope once the
// request itself could be parsed.
package graphql

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/salesdesk/pkg/response"
)

// maxBodyBytes bounds the size of a POSTed query document.
const maxBodyBytes = 1 << 20

// NewSchema creates a schema from the root query and mutation objects.
func NewSchema(query, mutation *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// Request is a single GraphQL operation.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Execute runs req against schema with ctx flowing into every resolver.
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

// Handler exposes schema over HTTP.
func Handler(schema graphql.Schema) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := parseRequest(w, r)
		if !ok {
			return
		}
		response.JSON(w, http.StatusOK, Execute(r.Context(), schema, req))
	})
}

func parseRequest(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var req Request

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if raw := q.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				response.Error(w, http.StatusBadRequest, "variables must be a JSON object")
				return req, false
			}
		}
	default:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "request body must be a JSON GraphQL request")
			return req, false
		}
	}

	if req.Query == "" {
		response.Error(w, http.StatusBadRequest, "query is required")
		return req, false
	}
	return req, true
}
