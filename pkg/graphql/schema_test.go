package graphql_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	salesgql "github.com/shashiranjanraj/salesdesk/pkg/graphql"
)

func echoSchema(t *testing.T) graphql.Schema {
	t.Helper()
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"echo": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"say": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Args["say"], nil
				},
			},
		},
	})
	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"noop": &graphql.Field{
				Type:    graphql.Boolean,
				Resolve: func(graphql.ResolveParams) (interface{}, error) { return true, nil },
			},
		},
	})
	schema, err := salesgql.NewSchema(query, mutation)
	require.NoError(t, err)
	return schema
}

func TestHandlerPost(t *testing.T) {
	h := salesgql.Handler(echoSchema(t))

	body := `{"query":"query Q($s: String!) { echo(say: $s) }","variables":{"s":"hi"}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"echo":"hi"}}`, rec.Body.String())
}

func TestHandlerGet(t *testing.T) {
	h := salesgql.Handler(echoSchema(t))

	q := url.Values{"query": {`{ echo(say: "yo") }`}}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"echo":"yo"}}`, rec.Body.String())
}

func TestHandlerRejectsMalformedRequests(t *testing.T) {
	h := salesgql.Handler(echoSchema(t))

	for name, body := range map[string]string{
		"not json":    "query { echo }",
		"empty query": `{"query":""}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlerReportsGraphQLErrorsIn200(t *testing.T) {
	h := salesgql.Handler(echoSchema(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ missing }"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors"`)
}
