// Package grpc runs the side-car gRPC server that exposes the standard
// grpc.health.v1.Health service. Orchestrators probe it to learn whether the
// API can reach MongoDB.
//
//	srv := grpc.New()
//	go srv.WatchDependency(ctx, "mongo", pingMongo, 10*time.Second)
//	err := srv.Serve(lis)
//	// ...run until signal...
//	srv.Stop()
package grpc

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
)

// ─── Prometheus metrics ───────────────────────────────────────────────────────

var (
	grpcRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salesdesk",
		Subsystem: "grpc",
		Name:      "handled_total",
		Help:      "Total number of gRPC calls completed by method and code.",
	}, []string{"grpc_method", "grpc_code"})

	grpcRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "salesdesk",
		Subsystem: "grpc",
		Name:      "handling_seconds",
		Help:      "Histogram of gRPC response latency in seconds.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"grpc_method"})
)

func init() {
	metrics.DefaultRegistry.MustRegister(grpcRequestsTotal, grpcRequestDuration)
}

// ─── Interceptors ─────────────────────────────────────────────────────────────

// recoveryInterceptor turns a handler panic into an INTERNAL status.
func recoveryInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("grpc: panic recovered",
				"method", info.FullMethod,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

// observeInterceptor logs and records metrics for each unary call.
func observeInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	dur := time.Since(start)

	code := status.Code(err)
	grpcRequestsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
	grpcRequestDuration.WithLabelValues(info.FullMethod).Observe(dur.Seconds())

	logger.Debug("grpc: request",
		"method", info.FullMethod,
		"duration_ms", dur.Milliseconds(),
		"code", code.String(),
	)
	return resp, err
}

// ─── Server ───────────────────────────────────────────────────────────────────

// Server wraps a grpc.Server with its health registry.
type Server struct {
	srv    *grpc.Server
	health *health.Server
}

// New builds the server. Every service starts NOT_SERVING until a
// dependency probe succeeds.
func New() *Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(recoveryInterceptor, observeInterceptor),
		grpc.MaxRecvMsgSize(1024*1024),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	grpc_health_v1.RegisterHealthServer(srv, hs)

	// grpcurl works without proto files
	reflection.Register(srv)

	return &Server{srv: srv, health: hs}
}

// Listen opens a TCP listener on port.
func Listen(port string) (net.Listener, error) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("grpc: listen on :%s: %w", port, err)
	}
	return lis, nil
}

// Serve blocks serving lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	logger.Info("gRPC server starting", "addr", lis.Addr().String())
	if err := s.srv.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("grpc: serve: %w", err)
	}
	return nil
}

// SetServing flips the overall health status.
func (s *Server) SetServing(ok bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if ok {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
}

// WatchDependency runs probe immediately and then every interval until ctx
// is done, reporting SERVING only while it succeeds.
func (s *Server) WatchDependency(ctx context.Context, name string, probe func(context.Context) error, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		err := probe(pctx)
		if err != nil {
			logger.Warn("grpc: dependency unhealthy", "dependency", name, "error", err)
		}
		s.SetServing(err == nil)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// Stop marks the server NOT_SERVING and waits for in-flight RPCs.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.srv.GracefulStop()
}
