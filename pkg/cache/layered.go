package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache implements a two-level cache. L1 is normally memory and L2 Redis.
type LayeredCache struct {
	l1    Service
	l2    Service
	l1TTL time.Duration
}

var _ Service = (*LayeredCache)(nil)

// NewLayeredCache creates a layered cache.
func NewLayeredCache(l1, l2 Service, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{
		L1TTL: time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &LayeredCache{l1: l1, l2: l2, l1TTL: cfg.L1TTL}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	// Write-through: L2 first, then L1
	if err := lc.l2.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.l1.Set(ctx, key, value, lc.promoteTTL(expiration))
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, err := lc.l1.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err := lc.l2.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	_ = lc.l1.Set(ctx, key, v, lc.l1TTL)
	return v, nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.l1.Delete(ctx, keys...)
	return lc.l2.Delete(ctx, keys...)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	return errors.Join(lc.l1.Close(), lc.l2.Close())
}

func (lc *LayeredCache) promoteTTL(expiration time.Duration) time.Duration {
	if expiration > 0 && expiration < lc.l1TTL {
		return expiration
	}
	return lc.l1TTL
}
