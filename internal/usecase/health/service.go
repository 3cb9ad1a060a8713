package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. Indexing is informational:
// a pass in flight is normal operation, not a failure.
type Report struct {
	Status   Status
	Checks   map[string]CheckResult
	Indexing bool
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	indexer BusyReporter
}

// New creates a Service. indexer can be nil.
func New(db DBPinger, indexer BusyReporter) *Service {
	return &Service{db: db, indexer: indexer}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	r := Report{Status: status, Checks: checks}
	if s.indexer != nil {
		r.Indexing = s.indexer.Busy()
	}
	return r
}
