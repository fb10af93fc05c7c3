package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aristath/taskrank/internal/task"
)

// DefaultBatchLimit bounds concurrent analyses in AnalyzeBatch.
const DefaultBatchLimit = 4

// Batch is one independent analysis request.
type Batch struct {
	Name   string
	Tasks  []task.Record
	Config map[string]any
}

// BatchResult is the outcome of one Batch. Err holds per-batch failures
// such as invalid config overrides.
type BatchResult struct {
	Name   string
	Report *Report
	Err    error
}

// AnalyzeBatch analyzes batches in parallel, at most limit at a time
// (DefaultBatchLimit if limit <= 0). Results are in input order.
// Per-batch failures are recorded in the result; only cancellation of ctx
// aborts the whole batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, batches []Batch, limit int) ([]BatchResult, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	results := make([]BatchResult, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, b := range batches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			report, err := a.Analyze(b.Tasks, b.Config)
			if err != nil {
				a.logger.Warn("batch analysis failed", "batch", b.Name, "error", err)
			}
			// Each goroutine writes only its own slot
			results[i] = BatchResult{Name: b.Name, Report: report, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
