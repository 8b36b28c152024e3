// Package server owns the listen/serve/drain lifecycle of the HTTP API and
// the gRPC health side-car.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	grpcserver "github.com/shashiranjanraj/salesdesk/pkg/grpc"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
)

const defaultShutdownTimeout = 15 * time.Second

// Options describes what to serve.
type Options struct {
	Handler http.Handler
	// HTTP is the API listener.
	HTTP net.Listener
	// GRPC and GRPCListener are optional; both nil disables the side-car.
	GRPC         *grpcserver.Server
	GRPCListener net.Listener

	ShutdownTimeout time.Duration
}

// Run serves until ctx is cancelled or a listener fails, then drains
// in-flight requests for at most ShutdownTimeout.
func Run(ctx context.Context, opts Options) error {
	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	srv := &http.Server{
		Handler:           opts.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", opts.HTTP.Addr().String())
		if err := srv.Serve(opts.HTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: http: %w", err)
		}
		return nil
	})

	if opts.GRPC != nil && opts.GRPCListener != nil {
		g.Go(func() error { return opts.GRPC.Serve(opts.GRPCListener) })
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", timeout.String())

		// ctx is already done here, so the drain gets a fresh deadline.
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		opts.GRPC.Stop()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
