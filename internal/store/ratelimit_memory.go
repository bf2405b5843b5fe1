package store

import (
	"context"
	"sync"
	"time"
)

// RateLimitMemoryStore is an in-memory implementation of ratelimit.Store.
type RateLimitMemoryStore struct {
	mu    sync.Mutex
	calls map[string][]time.Time
}

// NewRateLimitMemoryStore creates a new in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		calls: make(map[string][]time.Time),
	}
}

// Take prunes expired timestamps for key and records the call if the cap has
// not been reached. The whole sequence runs under one lock so concurrent
// callers cannot overshoot the limit.
func (s *RateLimitMemoryStore) Take(_ context.Context, key string, limit int64, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-window)

	timestamps := s.calls[key]
	valid := make([]time.Time, 0, len(timestamps)+1)

	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	if int64(len(valid)) >= limit {
		// Rejected attempts are not recorded.
		s.calls[key] = valid

		return false, nil
	}

	s.calls[key] = append(valid, now)

	return true, nil
}
