package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemory(t *testing.T, opts ...MemoryOption) *MemoryCache {
	t.Helper()
	mc := NewMemoryCache(append([]MemoryOption{WithMemoryCleanup(0)}, opts...)...)
	t.Cleanup(func() { _ = mc.Close() })
	return mc
}

func TestMemoryCacheGetSet(t *testing.T) {
	ctx := context.Background()
	mc := newTestMemory(t)

	_, err := mc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	got[0] = 'x'
	again, _ := mc.Get(ctx, "k")
	assert.Equal(t, []byte("v"), again, "stored bytes are not aliased")

	require.NoError(t, mc.Delete(ctx, "k"))
	_, err = mc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mc := newTestMemory(t)
	mc.now = func() time.Time { return clock }

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), time.Second))
	clock = clock.Add(2 * time.Second)

	_, err := mc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, mc.Len())
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mc := newTestMemory(t, WithMemoryMaxSize(2))
	mc.now = func() time.Time { return clock }

	require.NoError(t, mc.Set(ctx, "a", []byte("1"), 0))
	clock = clock.Add(time.Second)
	require.NoError(t, mc.Set(ctx, "b", []byte("2"), 0))
	clock = clock.Add(time.Second)
	_, err := mc.Get(ctx, "a")
	require.NoError(t, err)
	clock = clock.Add(time.Second)
	require.NoError(t, mc.Set(ctx, "c", []byte("3"), 0))

	assert.Equal(t, 2, mc.Len())
	_, err = mc.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = mc.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestLayeredCachePromotesFromL2(t *testing.T) {
	ctx := context.Background()
	l1 := newTestMemory(t)
	l2 := newTestMemory(t)
	lc := NewLayeredCache(l1, l2)

	require.NoError(t, l2.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := l1.Get(ctx, "k")
	require.ErrorIs(t, err, ErrCacheMiss)

	got, err := lc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	promoted, err := l1.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), promoted)
}

func TestLayeredCacheWriteThroughAndDelete(t *testing.T) {
	ctx := context.Background()
	l1 := newTestMemory(t)
	l2 := newTestMemory(t)
	lc := NewLayeredCache(l1, l2)

	require.NoError(t, lc.Set(ctx, "k", []byte("v"), time.Minute))
	for _, layer := range []Service{l1, l2} {
		v, err := layer.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
	}

	require.NoError(t, lc.Delete(ctx, "k"))
	_, err := lc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestJSONHelpers(t *testing.T) {
	type payload struct {
		Name  string    `json:"name"`
		Price []float64 `json:"price"`
	}
	ctx := context.Background()
	mc := newTestMemory(t)

	require.NoError(t, SetJSON(ctx, mc, "p", payload{Name: "Albany", Price: []float64{1.5}}, time.Minute))
	got, err := GetJSON[payload](ctx, mc, "p")
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "Albany", Price: []float64{1.5}}, got)

	require.NoError(t, mc.Set(ctx, "bad", []byte("{"), time.Minute))
	_, err = GetJSON[payload](ctx, mc, "bad")
	assert.Error(t, err)
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "charts:Albany:organic", GenerateKeyWithParams("charts", "Albany", "organic"))
	assert.Equal(t, "charts", GenerateKeyWithParams("charts"))
}

// Runs only when REDIS_ADDR points at a live server.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(ctx).Err())

	rc := NewRedisCacheFromClient(client, "avodash-test")
	t.Cleanup(func() { _ = rc.Close() })

	require.NoError(t, rc.Set(ctx, "k", []byte("v"), time.Minute))
	raw, err := client.Get(ctx, "avodash-test:k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", raw)

	got, err := rc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, rc.Delete(ctx, "k"))
	_, err = rc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
