// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// limiter.go provides a Valkey-backed fixed-window rate limiter so every
// replica of the API shares one request budget per client.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateKeyPrefix is the Valkey key prefix for rate-limit counters.
const rateKeyPrefix = "ratelimit:"

// ValkeyLimiter counts requests per key in fixed windows. Counters expire
// with their window, so nothing needs cleaning up.
type ValkeyLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewValkeyLimiter creates a limiter allowing limit requests per window.
func NewValkeyLimiter(client *redis.Client, limit int, window time.Duration) *ValkeyLimiter {
	return &ValkeyLimiter{client: client, limit: limit, window: window, now: time.Now}
}

// Allow reports whether key is still within its budget for the current
// window. Valkey errors fail open: the request is allowed and a warning is
// logged.
func (l *ValkeyLimiter) Allow(ctx context.Context, key string) bool {
	k := l.windowKey(key)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		slog.Warn("rate limiter unavailable, allowing request", "key", key, "error", err)
		return true
	}

	count := incr.Val()
	if count > int64(l.limit) {
		slog.Debug("rate limit exceeded", "key", key, "count", count)
		return false
	}
	return true
}

// windowKey scopes key to the window that contains now.
func (l *ValkeyLimiter) windowKey(key string) string {
	slot := l.now().UnixNano() / int64(l.window)
	return rateKeyPrefix + key + ":" + strconv.FormatInt(slot, 10)
}
