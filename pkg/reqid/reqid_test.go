package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/salesdesk/pkg/reqid"
)

func TestMiddlewareGeneratesID(t *testing.T) {
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))
}

func TestMiddlewareHonoursUpstreamID(t *testing.T) {
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(reqid.Header, "gateway-42")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "gateway-42", seen)

	req = httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(reqid.Header, strings.Repeat("x", 500))
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, strings.Repeat("x", 500), seen)
}
