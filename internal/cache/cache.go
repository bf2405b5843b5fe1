// Package cache defines the TTL response cache contract that sits in front
// of the external providers.
package cache

import (
	"context"
	"strings"
	"time"
)

// Store is a key-value cache where every entry carries a time-to-live.
// A read past the entry's expiry is a miss.
type Store interface {
	// Get returns the cached payload for key, or ok=false if the key was
	// never set or has expired.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)

	// Set stores payload under key for ttl, unconditionally overwriting any
	// existing entry.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Key builds a deterministic cache key from an operation name and every
// parameter that affects its result, in a stable order.
func Key(op string, params ...string) string {
	if len(params) == 0 {
		return op
	}

	return op + ":" + strings.Join(params, ":")
}
