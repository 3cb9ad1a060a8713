package memdex

import (
	"context"
	"fmt"
	"time"
)

// IndexService runs indexing passes. Only one pass runs at a time; a request
// arriving during an active pass is dropped, not queued.
type IndexService struct {
	svc indexerUseCase
	obs *observer
}

// Entry indexes a single entry. Started is false when another pass was
// already running.
func (s *IndexService) Entry(ctx context.Context, id string) (_ IndexReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("index.entry", start, err) }()

	ran, err := s.svc.IndexEntry(ctx, id)
	if err != nil {
		return IndexReport{Started: ran}, fmt.Errorf("index entry: %w", err)
	}
	report := IndexReport{Started: ran}
	if ran {
		report.Indexed = 1
	}
	return report, nil
}

// All indexes every entry not yet covered by the index, oldest first.
func (s *IndexService) All(ctx context.Context) (_ IndexReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("index.all", start, err) }()

	indexed, ran, err := s.svc.IndexAll(ctx)
	if err != nil {
		return IndexReport{Started: ran, Indexed: indexed}, fmt.Errorf("index all: %w", err)
	}
	return IndexReport{Started: ran, Indexed: indexed}, nil
}

// Busy reports whether an indexing pass is currently running.
func (s *IndexService) Busy() bool {
	return s.svc.Busy()
}
