// Package middleware provides the HTTP middleware stack of the API.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/salesdesk/pkg/response"
)

// bucket tracks a fixed-window request count for one IP.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (b *bucket) allow(max int, window time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.After(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}

	b.count++
	return b.count <= max
}

// RateLimiter limits each client IP to max requests per window.
type RateLimiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewRateLimiter builds a limiter and evicts expired buckets every window
// until ctx is done.
func NewRateLimiter(ctx context.Context, max int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{max: max, window: window, buckets: map[string]*bucket{}}
	go rl.janitor(ctx)
	return rl
}

func (rl *RateLimiter) janitor(ctx context.Context) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				b.mu.Lock()
				expired := now.After(b.resetAt)
				b.mu.Unlock()
				if expired {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) bucket(ip string) *bucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if b, ok := rl.buckets[ip]; ok {
		return b
	}
	b := &bucket{resetAt: time.Now().Add(rl.window)}
	rl.buckets[ip] = b
	return b
}

// Middleware rejects requests over the limit with 429. A limit of zero or
// less disables limiting.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl == nil || rl.max <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.bucket(clientIP(r)).allow(rl.max, rl.window) {
			response.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the first X-Forwarded-For hop and falls back to the
// connection address without its port.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
