// Package processor runs batches of label comparisons across a bounded
// worker pool.
package processor

import (
	"context"

	"github.com/Gobusters/ectologger"
	"golang.org/x/sync/errgroup"

	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// Comparer compares a single label against the catalog.
type Comparer interface {
	Compare(ctx context.Context, label string) (*models.MatchResult, error)
}

// Processor fans label comparisons out over a fixed number of workers.
type Processor struct {
	comparer Comparer
	workers  int
	log      ectologger.Logger
}

// NewProcessor creates a new batch processor
func NewProcessor(comparer Comparer, workers int, log ectologger.Logger) *Processor {
	if workers <= 0 {
		workers = 4
	}

	return &Processor{
		comparer: comparer,
		workers:  workers,
		log:      log,
	}
}

// CompareBatch compares labels concurrently and returns results in input
// order. Workers share the retrieval index read-only. The first comparison
// error cancels the remaining work.
func (p *Processor) CompareBatch(ctx context.Context, labels []string) ([]*models.MatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.CompareBatch")
	defer span.End()

	results := make([]*models.MatchResult, len(labels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, label := range labels {
		g.Go(func() error {
			result, err := p.comparer.Compare(gctx, label)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.log.WithContext(ctx).WithError(err).Error("Batch comparison failed")
		return nil, err
	}

	p.log.WithContext(ctx).WithFields(map[string]any{
		"label_count": len(labels),
		"workers":     p.workers,
	}).Debug("Compared label batch")

	return results, nil
}
