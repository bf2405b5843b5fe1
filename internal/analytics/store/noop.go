package store

import (
	"context"

	"github.com/hkmoon/bookcheck/internal/analytics"
	"go.uber.org/zap"
)

// Noop is an analytics.Store that only logs events. Used when no database
// is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveSearchPerformed(_ context.Context, event *analytics.SearchPerformedEvent) error {
	n.logger.Info("search event received",
		zap.String("query", event.Query),
		zap.Int("resultCount", event.ResultCount),
		zap.Bool("cacheHit", event.CacheHit),
		zap.Time("performedAt", event.PerformedAt),
	)

	return nil
}

func (n *Noop) SaveAvailabilityChecked(_ context.Context, event *analytics.AvailabilityCheckedEvent) error {
	n.logger.Info("availability event received",
		zap.String("isbn", event.ISBN),
		zap.String("libraryCode", event.LibraryCode),
		zap.String("region", event.Region),
		zap.Int("targets", event.Targets),
		zap.Bool("cacheHit", event.CacheHit),
		zap.Time("checkedAt", event.CheckedAt),
	)

	return nil
}
