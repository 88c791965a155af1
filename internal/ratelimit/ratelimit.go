// Package ratelimit implements a fixed-window request limiter on Redis.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/p-n-ai/pai-thanawi/internal/platform/cache"
)

const (
	keyPrefix   = "thanawi:ratelimit:"
	callTimeout = 300 * time.Millisecond
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is the time left in the current window when denied.
	RetryAfter time.Duration
}

// Limiter allows at most Limit requests per client per window.
type Limiter struct {
	cache  *cache.Cache
	limit  int
	window time.Duration
	now    func() time.Time
}

// New returns a limiter over c. A nil cache or a non-positive limit yields
// a limiter that allows everything.
func New(c *cache.Cache, limit int, window time.Duration) *Limiter {
	return &Limiter{cache: c, limit: limit, window: window, now: time.Now}
}

// Enabled reports whether the limiter enforces anything.
func (l *Limiter) Enabled() bool {
	return l != nil && l.cache != nil && l.limit > 0 && l.window > 0
}

// Allow counts one request for client in scope. Redis failures are logged
// and the request is allowed.
func (l *Limiter) Allow(ctx context.Context, scope, client string) Decision {
	if !l.Enabled() {
		return Decision{Allowed: true}
	}

	now := l.now()
	windowStart := now.Truncate(l.window)
	key := keyPrefix + scope + ":" + client + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var incr *redis.IntCmd
	_, err := l.cache.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, l.window)
		return nil
	})
	if err != nil {
		slog.Warn("rate limiter unavailable, allowing request", "error", err)
		return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit}
	}

	count := int(incr.Val())
	d := Decision{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: max(l.limit-count, 0),
	}
	if !d.Allowed {
		d.RetryAfter = windowStart.Add(l.window).Sub(now)
	}
	return d
}

// String describes the limiter for startup logs.
func (l *Limiter) String() string {
	if !l.Enabled() {
		return "disabled"
	}
	return fmt.Sprintf("%d per %s", l.limit, l.window)
}
