package students

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// EnrichOptions tunes Enrich.
type EnrichOptions struct {
	Concurrency int
	Logger      *zap.Logger
}

// Skipped describes a student dropped because its counters could not be read.
type Skipped struct {
	StudentID string
	Err       error
}

// EnrichResult is the outcome of Enrich.
type EnrichResult struct {
	Records []*Record
	Skipped []Skipped
}

// Enrich resolves application and mock interview counters for every record.
// Lookups run concurrently. A failed lookup drops only that student; the
// returned records keep input order.
func Enrich(ctx context.Context, records []*Record, lookup CountsLookup, opts EnrichOptions) *EnrichResult {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if lookup == nil {
		return &EnrichResult{Records: records}
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	enriched := make([]*Record, len(records))
	failures := make([]error, len(records))

	var g errgroup.Group
	g.SetLimit(limit)

	for idx, record := range records {
		if record == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[idx] = err
				return nil
			}

			counts, err := lookup.Counts(ctx, record.ID)
			if err != nil {
				failures[idx] = err
				return nil
			}

			enriched[idx] = record.WithCounts(counts)
			return nil
		})
	}

	// Goroutines never return errors; failures are tracked per student.
	_ = g.Wait()

	result := &EnrichResult{Records: make([]*Record, 0, len(records))}
	for idx, record := range records {
		if record == nil {
			continue
		}
		if failures[idx] != nil {
			logger.Warn("skipping student: counters lookup failed",
				zap.String("student_id", record.ID),
				zap.Error(failures[idx]),
			)
			result.Skipped = append(result.Skipped, Skipped{StudentID: record.ID, Err: failures[idx]})
			continue
		}
		result.Records = append(result.Records, enriched[idx])
	}

	if len(result.Skipped) > 0 {
		logger.Info("counters lookup completed",
			zap.Int("initial_students", len(records)),
			zap.Int("skipped_students", len(result.Skipped)),
		)
	}

	return result
}
