package unsubscribe

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Revocations records redeemed token ids.
type Revocations interface {
	// Revoke marks id as used and reports whether this was the first use.
	Revoke(ctx context.Context, id string) (bool, error)
	// Release forgets id so the token can be redeemed again.
	Release(ctx context.Context, id string) error
}

// MemoryRevocations keeps redeemed ids in process memory.
type MemoryRevocations struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewMemoryRevocations creates an in-process Revocations.
func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{ids: make(map[string]struct{})}
}

// Revoke marks id as used and reports whether it was unused before.
func (m *MemoryRevocations) Revoke(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ids[id]; ok {
		return false, nil
	}
	m.ids[id] = struct{}{}
	return true, nil
}

// Release forgets id so it can be redeemed again.
func (m *MemoryRevocations) Release(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ids, id)
	return nil
}

// DefaultRedisKeyPrefix prefixes redeemed token ids in Redis.
const DefaultRedisKeyPrefix = "unsubscribe:used:"

// RedisRevocations stores redeemed ids as Redis keys set with SETNX.
type RedisRevocations struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRevocations stores used token ids as keys under prefix.
func NewRedisRevocations(client redis.UniversalClient, prefix string) *RedisRevocations {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisRevocations{client: client, prefix: prefix}
}

// Revoke records id with SETNX and reports whether this call set it.
func (r *RedisRevocations) Revoke(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+id, 1, 0).Result()
	if err != nil {
		return false, errors.Join(ErrRevocationFailed, err)
	}
	return ok, nil
}

// Release deletes the record for id.
func (r *RedisRevocations) Release(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.prefix+id).Err(); err != nil {
		return errors.Join(ErrRevocationFailed, err)
	}
	return nil
}
