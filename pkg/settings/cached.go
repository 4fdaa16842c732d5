package settings

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/cache"
)

// DefaultCacheSize bounds the number of keys a Cached store remembers.
const DefaultCacheSize = 64

type cachedValue struct {
	value string
	found bool
}

// Cached remembers results of the wrapped store for ttl, absent keys
// included. Lookup errors are not cached.
type Cached struct {
	next  Store
	cache *cache.LRU[string, cachedValue]
}

// NewCached wraps next. A non-positive ttl returns next unchanged.
func NewCached(next Store, ttl time.Duration) Store {
	if ttl <= 0 {
		return next
	}
	return &Cached{next: next, cache: cache.NewLRU[string, cachedValue](DefaultCacheSize, ttl)}
}

func (c *Cached) Load(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if v, ok := c.cache.Get(key); ok {
		if !v.found {
			return "", ErrSettingNotFound
		}
		return v.value, nil
	}

	value, err := c.next.Load(ctx, key)
	switch {
	case err == nil:
		c.cache.Put(key, cachedValue{value: value, found: true})
	case errors.Is(err, ErrSettingNotFound):
		c.cache.Put(key, cachedValue{})
	}
	return value, err
}

// Forget drops key so the next Load reaches the wrapped store.
func (c *Cached) Forget(key string) {
	c.cache.Remove(key)
}
