// Package auth issues and verifies signed identity tokens, hashes passwords
// and carries the verified identity through a request context.
package auth

import "context"

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying the verified claims.
func WithIdentity(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the claims stored by WithIdentity, or nil for an
// unauthenticated request.
func FromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(ctxKey{}).(*Claims)
	return c
}
