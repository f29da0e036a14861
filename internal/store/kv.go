package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrMiss = errors.New("cache miss")

type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type RedisKV struct {
	c *redis.Client
}

func NewRedisKV(c *redis.Client) *RedisKV { return &RedisKV{c: c} }

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.c.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.c.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.c.Del(ctx, key).Err()
}

// MemoryKV is the no-Redis fallback for local dev and tests. TTLs are
// honored lazily on read.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero = no expiry
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]memoryEntry{}}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		_ = m.Delete(ctx, key)
		return "", ErrMiss
	}
	return e.value, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.data[key] = memoryEntry{value: value, expiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}
