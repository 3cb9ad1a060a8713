package search

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/memdex/internal/domain/search/result"
	"github.com/kailas-cloud/memdex/internal/metrics"
)

// InstrumentedService wraps Service with Prometheus metrics and debug logging.
// It is API-compatible with Service and replaces it at wiring time.
type InstrumentedService struct {
	inner  *Service
	logger *zap.Logger
}

// NewInstrumented wraps a search service with observability.
func NewInstrumented(inner *Service, logger *zap.Logger) *InstrumentedService {
	return &InstrumentedService{inner: inner, logger: logger}
}

// Search delegates to the inner service and records query metrics.
func (p *InstrumentedService) Search(query string) []result.Result {
	start := time.Now()

	results := p.inner.Search(query)

	duration := time.Since(start)
	metrics.SearchesTotal.Inc()
	metrics.SearchDuration.Observe(duration.Seconds())
	metrics.SearchResults.Observe(float64(len(results)))

	p.logger.Debug("Search completed",
		zap.String("query", query),
		zap.Duration("duration", duration),
		zap.Int("results", len(results)),
	)

	return results
}

// History delegates to the inner service.
func (p *InstrumentedService) History() []string {
	return p.inner.History()
}
