// Package analytics publishes and consumes query events emitted by the
// request handlers.
package analytics

import "time"

// Topics for query events.
const (
	TopicSearchPerformed     = "book.search.performed"
	TopicAvailabilityChecked = "book.availability.checked"
)

// SearchPerformedEvent is emitted after every catalog search.
type SearchPerformedEvent struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	ResultCount int       `json:"resultCount"`
	CacheHit    bool      `json:"cacheHit"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
	RequestID   string    `json:"requestId"`
	PerformedAt time.Time `json:"performedAt"`
}

// AvailabilityCheckedEvent is emitted after every availability check, both
// single-library and region-wide.
type AvailabilityCheckedEvent struct {
	ID          string    `json:"id"`
	ISBN        string    `json:"isbn"`
	LibraryCode string    `json:"libraryCode,omitempty"`
	Region      string    `json:"region,omitempty"`
	District    string    `json:"district,omitempty"`
	Targets     int       `json:"targets"`
	CacheHit    bool      `json:"cacheHit"`
	ClientIP    string    `json:"clientIp"`
	RequestID   string    `json:"requestId"`
	CheckedAt   time.Time `json:"checkedAt"`
}
