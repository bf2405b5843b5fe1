package availability

import (
	"context"
	"time"

	"github.com/hkmoon/bookcheck/internal/library"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// fanOutLimit bounds concurrent provider calls in a multi-library check.
	fanOutLimit = 8

	singleCheckTimeout = 5 * time.Second
	batchCheckTimeout  = 4 * time.Second
)

// Aggregator resolves availability for one or many target libraries.
type Aggregator struct {
	checker Checker
	logger  *zap.Logger
}

// NewAggregator creates a new availability aggregator.
func NewAggregator(checker Checker, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		checker: checker,
		logger:  logger,
	}
}

// CheckOne queries a single library. Any provider failure aborts the whole
// operation; there is no partial result.
func (a *Aggregator) CheckOne(ctx context.Context, isbn string, lib library.Record) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, singleCheckTimeout)
	defer cancel()

	hasBook, loanAvailable, err := a.checker.Check(ctx, isbn, lib.Code)
	if err != nil {
		return Result{}, err
	}

	return Result{
		LibraryName:   lib.Name,
		HasBook:       hasBook,
		LoanAvailable: loanAvailable,
	}, nil
}

// CheckAll queries every target library with bounded parallel fan-out and
// returns results in target order. A library whose call fails contributes a
// negative result instead of aborting the batch: one unreachable library
// must never prevent reporting the others.
func (a *Aggregator) CheckAll(ctx context.Context, isbn string, libs []library.Record) []Result {
	results := make([]Result, len(libs))

	var g errgroup.Group

	g.SetLimit(fanOutLimit)

	for i, lib := range libs {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, batchCheckTimeout)
			defer cancel()

			hasBook, loanAvailable, err := a.checker.Check(callCtx, isbn, lib.Code)
			if err != nil {
				a.logger.Warn("availability check failed",
					zap.String("libraryCode", lib.Code),
					zap.String("isbn", isbn),
					zap.Error(err),
				)

				results[i] = Result{LibraryName: lib.Name}

				return nil
			}

			results[i] = Result{
				LibraryName:   lib.Name,
				HasBook:       hasBook,
				LoanAvailable: loanAvailable,
			}

			return nil
		})
	}

	// Goroutines never return errors; failures become negative results.
	_ = g.Wait()

	return results
}
