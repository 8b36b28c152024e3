package routes

import (
	"net/http"

	"github.com/shashiranjanraj/salesdesk/app/controllers"
	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
	"github.com/shashiranjanraj/salesdesk/pkg/router"
)

// Handlers are the endpoints served by the API.
type Handlers struct {
	GraphQL http.Handler
	Feed    http.Handler
	Health  *controllers.HealthController
}

func RegisterAPI(r *router.Router, h Handlers) {
	r.Get("/graphql", "graphql.query", h.GraphQL)
	r.Post("/graphql", "graphql.execute", h.GraphQL)

	r.Get("/ws/orders", "orders.feed", h.Feed)

	r.Get("/healthz", "health", http.HandlerFunc(h.Health.Check))
	r.Get("/metrics", "metrics", metrics.Handler())
}
