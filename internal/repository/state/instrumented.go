package state

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/memdex/internal/repository/corpus"
)

// InstrumentedRepo counts snapshot writes that fail.
// failures is a plain counter, passed explicitly; nil disables counting.
type InstrumentedRepo struct {
	inner    *Repo
	failures prometheus.Counter
}

// NewInstrumented creates a counting decorator over a state repository.
func NewInstrumented(inner *Repo, failures prometheus.Counter) *InstrumentedRepo {
	return &InstrumentedRepo{inner: inner, failures: failures}
}

// Save delegates to the inner repository and counts failures.
func (r *InstrumentedRepo) Save(ctx context.Context, s corpus.Snapshot) error {
	err := r.inner.Save(ctx, s)
	if err != nil && r.failures != nil {
		r.failures.Inc()
	}
	return err //nolint:wrapcheck // transparent decorator
}

// Load delegates to the inner repository.
func (r *InstrumentedRepo) Load(ctx context.Context) (corpus.Snapshot, error) {
	return r.inner.Load(ctx) //nolint:wrapcheck // transparent decorator
}

// Delete delegates to the inner repository.
func (r *InstrumentedRepo) Delete(ctx context.Context) error {
	return r.inner.Delete(ctx) //nolint:wrapcheck // transparent decorator
}
