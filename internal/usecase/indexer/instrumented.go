package indexer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/memdex/internal/metrics"
)

// InstrumentedService wraps Service with Prometheus metrics and logging.
// It is API-compatible with Service and replaces it at wiring time.
type InstrumentedService struct {
	inner  *Service
	logger *zap.Logger
}

// NewInstrumented wraps an indexer service with observability.
func NewInstrumented(inner *Service, logger *zap.Logger) *InstrumentedService {
	return &InstrumentedService{inner: inner, logger: logger}
}

// Busy reports whether an indexing pass is currently running.
func (p *InstrumentedService) Busy() bool { return p.inner.Busy() }

// IndexEntry delegates to the inner service and records pass metrics.
func (p *InstrumentedService) IndexEntry(ctx context.Context, id string) (bool, error) {
	start := time.Now()

	ran, err := p.inner.IndexEntry(ctx, id)
	if !ran {
		metrics.IndexDropsTotal.Inc()
		p.logger.Debug("Indexing request dropped, pass already running", zap.String("id", id))
		return false, err
	}

	duration := time.Since(start)
	if err != nil {
		metrics.IndexPassesTotal.WithLabelValues("entry", "error").Inc()
		p.logger.Error("Indexing pass failed",
			zap.String("id", id),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return true, err
	}

	metrics.IndexPassesTotal.WithLabelValues("entry", "ok").Inc()
	metrics.EntriesIndexedTotal.Inc()
	p.logger.Debug("Indexing pass completed",
		zap.String("id", id),
		zap.Duration("duration", duration),
	)
	return true, nil
}

// IndexAll delegates to the inner service and records pass metrics.
func (p *InstrumentedService) IndexAll(ctx context.Context) (int, bool, error) {
	start := time.Now()

	indexed, ran, err := p.inner.IndexAll(ctx)
	if !ran {
		metrics.IndexDropsTotal.Inc()
		p.logger.Debug("Bulk indexing dropped, pass already running")
		return indexed, false, err
	}

	duration := time.Since(start)
	metrics.EntriesIndexedTotal.Add(float64(indexed))
	if err != nil {
		metrics.IndexPassesTotal.WithLabelValues("all", "error").Inc()
		p.logger.Error("Bulk indexing interrupted",
			zap.Int("indexed", indexed),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return indexed, true, err
	}

	metrics.IndexPassesTotal.WithLabelValues("all", "ok").Inc()
	p.logger.Info("Bulk indexing completed",
		zap.Int("indexed", indexed),
		zap.Duration("duration", duration),
	)
	return indexed, true, nil
}
