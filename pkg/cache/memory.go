package cache

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryItem stores cached value with expiration.
type MemoryItem struct {
	Value    []byte
	ExpireAt time.Time
	access   time.Time
}

func (m *MemoryItem) expired(now time.Time) bool {
	return now.After(m.ExpireAt)
}

// MemoryCache implements Service using in-memory storage with LRU eviction.
type MemoryCache struct {
	data       map[string]*MemoryItem
	mutex      sync.Mutex
	maxSize    int
	defaultTTL time.Duration
	now        func() time.Time
	stop       chan struct{}
	closeOnce  sync.Once
}

var _ Service = (*MemoryCache)(nil)

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:         1000,
		CleanupInterval: 5 * time.Minute,
		DefaultTTL:      time.Hour,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		data:       make(map[string]*MemoryItem),
		maxSize:    cfg.MaxSize,
		defaultTTL: cfg.DefaultTTL,
		now:        time.Now,
		stop:       make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go mc.cleanupExpired(cfg.CleanupInterval)
	}
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	if _, exists := mc.data[key]; !exists && mc.maxSize > 0 && len(mc.data) >= mc.maxSize {
		mc.evictLRU()
	}

	if expiration <= 0 {
		expiration = mc.defaultTTL
	}
	now := mc.now()
	mc.data[key] = &MemoryItem{
		Value:    slices.Clone(value),
		ExpireAt: now.Add(expiration),
		access:   now,
	}
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	item, exists := mc.data[key]
	if !exists {
		return nil, ErrCacheMiss
	}
	if item.expired(now) {
		delete(mc.data, key)
		return nil, ErrCacheMiss
	}

	item.access = now
	return slices.Clone(item.Value), nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		delete(mc.data, key)
	}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (mc *MemoryCache) Len() int {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	return len(mc.data)
}

func (mc *MemoryCache) evictLRU() {
	var oldestKey string
	var oldest time.Time

	for key, item := range mc.data {
		if oldestKey == "" || item.access.Before(oldest) {
			oldest = item.access
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(mc.data, oldestKey)
	}
}

func (mc *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case <-ticker.C:
			mc.mutex.Lock()
			now := mc.now()
			for key, item := range mc.data {
				if item.expired(now) {
					delete(mc.data, key)
				}
			}
			mc.mutex.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (mc *MemoryCache) Close() error {
	mc.closeOnce.Do(func() { close(mc.stop) })
	return nil
}
