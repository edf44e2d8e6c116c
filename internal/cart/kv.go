package cart

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryKV keeps blobs in process memory.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

type redisStore interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(name string) string
}

// RedisKV stores blobs in Redis under the cart namespace, refreshing the TTL on every write.
type RedisKV struct {
	store redisStore
	ttl   time.Duration
}

func NewRedisKV(store redisStore, ttl time.Duration) (*RedisKV, error) {
	if store == nil {
		return nil, errors.New("redis store required")
	}
	return &RedisKV{store: store, ttl: ttl}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	return r.store.Lookup(ctx, r.store.CartKey(key))
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.store.Set(ctx, r.store.CartKey(key), value, r.ttl)
}
