// Package stats caches dashboard aggregates between writes.
package stats

import (
	"context"
	"log/slog"
	"time"
)

const (
	LoanKey     = "stats:loans"
	BorrowerKey = "stats:borrowers"
)

// Cache is satisfied by cache.Store.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Cached returns the snapshot under key, computing and storing it on a miss.
// Cache failures are logged and fall through to compute.
func Cached[T any](ctx context.Context, c Cache, key string, ttl time.Duration, log *slog.Logger, compute func() (T, error)) (T, error) {
	if c == nil {
		return compute()
	}
	var hit T
	ok, err := c.GetJSON(ctx, key, &hit)
	if err != nil {
		log.Warn("stats cache read failed", "key", key, "error", err)
	}
	if ok {
		return hit, nil
	}

	v, err := compute()
	if err != nil {
		return v, err
	}
	if err := c.SetJSON(ctx, key, v, ttl); err != nil {
		log.Warn("stats cache write failed", "key", key, "error", err)
	}
	return v, nil
}

// Invalidate drops the given snapshots after a write.
func Invalidate(ctx context.Context, c Cache, log *slog.Logger, keys ...string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		log.Warn("stats cache invalidation failed", "keys", keys, "error", err)
	}
}
