// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns the logger the
// request middleware stored in the context, so every line a resolver writes
// carries the request ID:
//
//	log := logger.WithCtx(ctx)
//	log.Info("order placed", "order_id", order.ID.Hex())
//	// → time=... level=INFO msg="order placed" request_id=5b0c... order_id=...
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// L is the process-wide base logger. Setup replaces it at boot.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// New builds a logger for env: JSON at INFO in production, text at DEBUG
// everywhere else. Extra handlers receive every record as well.
func New(w io.Writer, env string, extra ...slog.Handler) *slog.Logger {
	var handler slog.Handler

	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}
	return slog.New(handler)
}

// Setup installs the base logger for env and makes it the slog default.
func Setup(env string, extra ...slog.Handler) *slog.Logger {
	L = New(os.Stdout, env, extra...)
	slog.SetDefault(L)
	return L
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base
// logger when there is none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
