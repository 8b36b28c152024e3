package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
)

type ReportService struct {
	orders OrderStore
	cache  Cache
	ttl    time.Duration
}

// BestClients ranks clients by completed sales.
func (s *ReportService) BestClients(ctx context.Context) ([]*models.TopClient, error) {
	return cached(ctx, s, KeyBestClients, s.orders.TopClients)
}

// BestSellers ranks sellers by completed sales.
func (s *ReportService) BestSellers(ctx context.Context) ([]*models.TopSeller, error) {
	return cached(ctx, s, KeyBestSellers, s.orders.TopSellers)
}

func cached[T any](ctx context.Context, s *ReportService, key string, load func(context.Context) ([]*T, error)) ([]*T, error) {
	var rows []*T
	if s.ttl > 0 && s.cache.Get(ctx, key, &rows) {
		return rows, nil
	}

	rows, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, key, rows, s.ttl); err != nil {
			logger.WithCtx(ctx).Warn("report cache write failed", "key", key, "error", err)
		}
	}
	return rows, nil
}
