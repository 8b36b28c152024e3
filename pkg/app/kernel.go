package app

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/salesdesk/app/controllers"
	"github.com/shashiranjanraj/salesdesk/app/routes"
	"github.com/shashiranjanraj/salesdesk/config"
	"github.com/shashiranjanraj/salesdesk/pkg/auth"
	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
	"github.com/shashiranjanraj/salesdesk/pkg/middleware"
	"github.com/shashiranjanraj/salesdesk/pkg/reqid"
	"github.com/shashiranjanraj/salesdesk/pkg/router"
)

// NewRouter mounts the API behind the global middleware stack.
//
// Outermost first:
//  1. metrics, so latency covers everything below
//  2. recovery, so a panic still produces a response
//  3. request id, before anything logs
//  4. logger, which tags its lines with the request id
//  5. CORS
//  6. rate limiter
//  7. identity, which verifies the token for the resolvers
func NewRouter(ctx context.Context, cfg *config.Config, iss *auth.Issuer, h routes.Handlers) *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.GraphQLCORSOptions(cfg.CORSOrigins)))
	r.Use(middleware.NewRateLimiter(ctx, cfg.RateLimit, time.Minute).Middleware)
	r.Use(middleware.Identity(iss))

	routes.RegisterAPI(r, h)
	return r
}

// RouteTable lists the routes without connecting to anything.
func RouteTable() []router.Route {
	r := router.New()
	noop := http.NotFoundHandler()
	routes.RegisterAPI(r, routes.Handlers{
		GraphQL: noop,
		Feed:    noop,
		Health:  controllers.NewHealthController(nil, time.Second),
	})
	return r.Routes()
}
