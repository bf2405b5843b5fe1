package store

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/hkmoon/bookcheck/internal/analytics"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dialectPostgres = "postgres"

// AnalyticsPostgresStore persists query events to PostgreSQL.
type AnalyticsPostgresStore struct {
	pool *pgxpool.Pool
}

// NewAnalyticsPostgresStore creates a new PostgreSQL-backed analytics store.
func NewAnalyticsPostgresStore(pool *pgxpool.Pool) *AnalyticsPostgresStore {
	return &AnalyticsPostgresStore{pool: pool}
}

func (s *AnalyticsPostgresStore) SaveSearchPerformed(ctx context.Context, event *analytics.SearchPerformedEvent) error {
	sql, args, err := goqu.Dialect(dialectPostgres).
		Insert("search_events").
		Cols("id", "query", "result_count", "cache_hit", "client_ip", "user_agent", "request_id", "performed_at").
		Vals(goqu.Vals{
			event.ID,
			event.Query,
			event.ResultCount,
			event.CacheHit,
			event.ClientIP,
			event.UserAgent,
			event.RequestID,
			event.PerformedAt,
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build search event insert: %w", err)
	}

	_, err = s.pool.Exec(ctx, sql, args...)

	return err
}

func (s *AnalyticsPostgresStore) SaveAvailabilityChecked(ctx context.Context, event *analytics.AvailabilityCheckedEvent) error {
	sql, args, err := goqu.Dialect(dialectPostgres).
		Insert("availability_events").
		Cols("id", "isbn", "library_code", "region", "district", "targets", "cache_hit", "client_ip", "request_id", "checked_at").
		Vals(goqu.Vals{
			event.ID,
			event.ISBN,
			event.LibraryCode,
			event.Region,
			event.District,
			event.Targets,
			event.CacheHit,
			event.ClientIP,
			event.RequestID,
			event.CheckedAt,
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build availability event insert: %w", err)
	}

	_, err = s.pool.Exec(ctx, sql, args...)

	return err
}

// Compile-time check.
var _ analytics.Store = (*AnalyticsPostgresStore)(nil)
