package ratelimit

import (
	"context"
	"time"
)

// Store defines the interface for sliding-window bookkeeping.
type Store interface {
	// Take prunes entries for key older than the window, then records the
	// call only if fewer than limit remain. It reports whether the call was
	// admitted; rejected calls are not recorded.
	Take(ctx context.Context, key string, limit int64, window time.Duration) (allowed bool, err error)
}
