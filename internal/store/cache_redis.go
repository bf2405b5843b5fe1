package store

import (
	"context"
	"errors"
	"time"

	"github.com/hkmoon/bookcheck/internal/cache"
	"github.com/redis/go-redis/v9"
)

// CacheRedisStore is a Redis implementation of cache.Store. Expiry is
// delegated to Redis key TTLs.
type CacheRedisStore struct {
	client *redis.Client
	prefix string
}

// NewCacheRedisStore creates a new Redis-backed cache store.
func NewCacheRedisStore(client *redis.Client) *CacheRedisStore {
	return &CacheRedisStore{
		client: client,
		prefix: "cache:",
	}
}

func (s *CacheRedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return payload, true, nil
}

func (s *CacheRedisStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, payload, ttl).Err()
}

// Compile-time check.
var _ cache.Store = (*CacheRedisStore)(nil)
