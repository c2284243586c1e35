package observability

import (
	"context"
	"time"

	"github.com/rshade/solarsizer/internal/engine"
)

// Estimator sizes a project.
type Estimator interface {
	Estimate(ctx context.Context, in engine.ProjectInput) (*engine.SizingResult, error)
}

type instrumented struct {
	next    Estimator
	metrics *Metrics
}

// Instrument wraps next so every estimate is counted and timed.
// A nil metrics returns next unchanged.
func Instrument(next Estimator, metrics *Metrics) Estimator {
	if metrics == nil {
		return next
	}
	return instrumented{next: next, metrics: metrics}
}

func (i instrumented) Estimate(ctx context.Context, in engine.ProjectInput) (*engine.SizingResult, error) {
	start := time.Now()
	result, err := i.next.Estimate(ctx, in)
	i.metrics.ObserveEstimate(err, time.Since(start))
	return result, err
}
