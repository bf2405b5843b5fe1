package store

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// CacheMemoryStore is an in-memory implementation of cache.Store. Expired
// entries are evicted lazily on read; the key space is bounded by practical
// query cardinality, so no further eviction policy is applied.
type CacheMemoryStore struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCacheMemoryStore creates a new in-memory cache store.
func NewCacheMemoryStore() *CacheMemoryStore {
	return &CacheMemoryStore{
		entries: make(map[string]cacheEntry),
	}
}

func (s *CacheMemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}

	// An entry is logically absent once now >= expiresAt.
	if !time.Now().Before(entry.expiresAt) {
		delete(s.entries, key)

		return nil, false, nil
	}

	return entry.payload, true, nil
}

func (s *CacheMemoryStore) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = cacheEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}
