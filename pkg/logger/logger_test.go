package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/salesdesk/pkg/logger"
)

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "production")

	log.Debug("hidden")
	log.Info("order placed", "order_id", "abc")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug must be filtered in production")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "order placed", rec["msg"])
	assert.Equal(t, "abc", rec["order_id"])
}

func TestWithCtx(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))

	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "r-1")
	ctx := logger.InjectLogger(context.Background(), reqLog)

	logger.WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=r-1")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := logger.NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	slog.New(h).With("k", "v").Info("both")

	assert.Contains(t, a.String(), "k=v")
	assert.Contains(t, b.String(), `"k":"v"`)
}
