package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/shashiranjanraj/salesdesk/app/controllers"
	"github.com/shashiranjanraj/salesdesk/app/feed"
	"github.com/shashiranjanraj/salesdesk/app/graph"
	"github.com/shashiranjanraj/salesdesk/app/routes"
	"github.com/shashiranjanraj/salesdesk/internal/server"
	"github.com/shashiranjanraj/salesdesk/pkg/database"
	"github.com/shashiranjanraj/salesdesk/pkg/graphql"
	grpcserver "github.com/shashiranjanraj/salesdesk/pkg/grpc"
	"github.com/shashiranjanraj/salesdesk/pkg/middleware"
	"github.com/shashiranjanraj/salesdesk/pkg/ws"
)

const probeInterval = 10 * time.Second

// Serve runs the HTTP API, the order feed and the gRPC health side-car
// until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	schema, err := graph.NewSchema(a.Services)
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}

	hub := ws.NewHub()
	go hub.Run(ctx)
	cors := middleware.GraphQLCORSOptions(a.Config.CORSOrigins)
	ws.SetCheckOrigin(func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || cors.OriginAllowed(origin)
	})

	orders := feed.New(hub, a.Issuer)
	orders.Listen(a.Bus)

	pingMongo := func(ctx context.Context) error { return database.Ping(ctx, a.Mongo) }
	health := controllers.NewHealthController(map[string]controllers.Probe{
		"mongo": pingMongo,
		"redis": a.Cache.Ping,
	}, 2*time.Second)

	r := NewRouter(ctx, a.Config, a.Issuer, routes.Handlers{
		GraphQL: graphql.Handler(schema),
		Feed:    orders.Handler(),
		Health:  health,
	})

	lis, err := net.Listen("tcp", ":"+a.Config.AppPort)
	if err != nil {
		return fmt.Errorf("listen on :%s: %w", a.Config.AppPort, err)
	}

	opts := server.Options{Handler: r.Handler(), HTTP: lis}
	if a.Config.GRPCPort != "" {
		glis, err := grpcserver.Listen(a.Config.GRPCPort)
		if err != nil {
			lis.Close()
			return err
		}
		opts.GRPC = grpcserver.New()
		opts.GRPCListener = glis
		go opts.GRPC.WatchDependency(ctx, "mongo", pingMongo, probeInterval)
	}

	return server.Run(ctx, opts)
}
