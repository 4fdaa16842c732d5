package settings

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisHash is the Redis hash that holds settings fields.
const DefaultRedisHash = "settings"

// RedisStore reads settings from fields of a single Redis hash.
type RedisStore struct {
	client redis.UniversalClient
	hash   string
}

// NewRedisStore creates a Redis-backed store. An empty hash name falls back
// to DefaultRedisHash.
func NewRedisStore(client redis.UniversalClient, hash string) *RedisStore {
	if hash == "" {
		hash = DefaultRedisHash
	}
	return &RedisStore{client: client, hash: hash}
}

func (s *RedisStore) Load(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	v, err := s.client.HGet(ctx, s.hash, key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && v == "") {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", errors.Join(ErrLoadFailed, err)
	}
	return v, nil
}

// Save writes key into the hash.
func (s *RedisStore) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.client.HSet(ctx, s.hash, key, value).Err()
}
