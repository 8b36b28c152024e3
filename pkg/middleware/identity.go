package middleware

import (
	"net/http"

	"github.com/shashiranjanraj/salesdesk/pkg/auth"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
)

// Identity verifies the Authorization token, when one is sent, and stores
// the claims in the request context. A bad token never rejects the request:
// resolvers decide what an anonymous caller may do.
func Identity(iss *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := iss.Verify(token)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("auth: token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), claims)))
		})
	}
}
