// Package cache is a small JSON-over-Redis cache. A nil *Redis is valid and
// behaves as an always-empty cache, so callers never branch on whether Redis
// is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
)

// Redis wraps a go-redis client.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// New wraps an existing client. Keys are namespaced with prefix.
func New(rdb *redis.Client, prefix string) *Redis {
	return &Redis{rdb: rdb, prefix: prefix}
}

// Connect dials addr and verifies the connection with a ping. An empty addr
// returns (nil, nil): caching is disabled.
func Connect(ctx context.Context, addr, password, prefix string) (*Redis, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb, prefix), nil
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func (c *Redis) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return false
		}
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false
	}
	metrics.CacheHits.WithLabelValues(key).Inc()
	return true
}

// Set stores value under key for the given TTL.
func (c *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, data, ttl).Err()
}

// Del removes one or more keys.
func (c *Redis) Del(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.rdb.Del(ctx, full...).Err()
}

// Ping reports whether Redis answers. A disabled cache is always healthy.
func (c *Redis) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Redis) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
