package analytics

import "context"

// Store defines the interface for persisting query events.
type Store interface {
	SaveSearchPerformed(ctx context.Context, event *SearchPerformedEvent) error
	SaveAvailabilityChecked(ctx context.Context, event *AvailabilityCheckedEvent) error
}
