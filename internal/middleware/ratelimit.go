// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateKeyPrefix is the Valkey key prefix for rate limit counters.
const rateKeyPrefix = "ratelimit:"

// RateLimiter is a fixed-window per-IP limiter whose counters live in
// Valkey, so every server instance shares the same budget.
type RateLimiter struct {
	client *redis.Client
	limit  int           // max requests per window
	window time.Duration // window length
	now    func() time.Time
}

// NewRateLimiter creates a rate limiter that allows limit requests per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// windowKey returns the counter key for key in the current window.
func (rl *RateLimiter) windowKey(key string) string {
	slot := rl.now().UnixNano() / int64(rl.window)
	return fmt.Sprintf("%s%s:%d", rateKeyPrefix, key, slot)
}

// allow increments the caller's counter and reports whether it is still
// within the limit.
func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	k := rl.windowKey(key)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("rate limit incr: %w", err)
	}

	return incr.Val() <= int64(rl.limit), nil
}

// Middleware returns an HTTP middleware that rate-limits by client IP.
// If Valkey cannot be reached the request is let through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := rl.allow(r.Context(), clientIP(r))
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err)
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the original client.
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr (strip port).
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
