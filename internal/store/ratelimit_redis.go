package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hkmoon/bookcheck/internal/ratelimit"
	"github.com/redis/go-redis/v9"
)

// takeScript implements the prune-check-record sequence atomically on the
// server so concurrent clients cannot overshoot the cap. One sorted set per
// key, scored by call time in milliseconds.
var takeScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
if redis.call('ZCARD', key) >= limit then
  return 0
end
redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, window)
return 1
`)

// RateLimitRedisStore is a Redis implementation of ratelimit.Store, for
// deployments where several instances must share one rate limit table.
type RateLimitRedisStore struct {
	client *redis.Client
	prefix string
}

// NewRateLimitRedisStore creates a new Redis-backed rate limit store.
func NewRateLimitRedisStore(client *redis.Client) *RateLimitRedisStore {
	return &RateLimitRedisStore{
		client: client,
		prefix: "ratelimit:",
	}
}

func (s *RateLimitRedisStore) Take(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	res, err := takeScript.Run(ctx, s.client,
		[]string{s.prefix + key},
		time.Now().UnixMilli(),
		window.Milliseconds(),
		limit,
		uuid.NewString(),
	).Int()
	if err != nil {
		return false, err
	}

	return res == 1, nil
}

// Compile-time check.
var _ ratelimit.Store = (*RateLimitRedisStore)(nil)
