package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service stores opaque byte payloads with a TTL.
type Service interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// GetJSON reads key and unmarshals it into a T.
func GetJSON[T any](ctx context.Context, c Service, key string) (T, error) {
	var out T
	raw, err := c.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return out, nil
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, c Service, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.Set(ctx, key, raw, expiration)
}
