package indexer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/posting"
	"github.com/kailas-cloud/memdex/internal/domain/relevance"
	"github.com/kailas-cloud/memdex/internal/domain/token"
)

// Service maintains the inverted index: tokenizes entry content and keeps
// posting statistics up to date. At most one indexing pass runs at a time.
type Service struct {
	corpus Corpus
	state  StateSaver
	logger *zap.Logger
	gate   gate
	pause  func()
}

// New creates an indexer service.
func New(c Corpus, state StateSaver, logger *zap.Logger) *Service {
	return &Service{
		corpus: c,
		state:  state,
		logger: logger,
		pause:  runtime.Gosched,
	}
}

// WithPause configures the cooperative pause between entries in IndexAll.
func (s *Service) WithPause(pause func()) *Service {
	if pause != nil {
		s.pause = pause
	}
	return s
}

// Busy reports whether an indexing pass is currently running.
func (s *Service) Busy() bool {
	return s.gate.busy()
}

// IndexEntry runs one indexing pass over a single entry.
// Returns ran=false when another pass is active: the call is dropped,
// not queued, and the caller must not assume eventual execution.
func (s *Service) IndexEntry(ctx context.Context, id string) (ran bool, err error) {
	if !s.gate.enter() {
		return false, nil
	}
	defer s.gate.leave()

	e, err := s.corpus.Get(id)
	if err != nil {
		return true, fmt.Errorf("get entry: %w", err)
	}

	if err := s.indexOne(&e); err != nil {
		return true, err
	}
	s.finishPass(ctx)
	return true, nil
}

// IndexAll indexes every entry not yet covered by a pass, in creation order,
// yielding between entries so the caller can interleave other work.
// Returns ran=false when a pass was already active.
func (s *Service) IndexAll(ctx context.Context) (indexed int, ran bool, err error) {
	if !s.gate.enter() {
		return 0, false, nil
	}
	defer s.gate.leave()

	pending := s.corpus.Pending()
	for i := range pending {
		if err := ctx.Err(); err != nil {
			if indexed > 0 {
				s.finishPass(ctx)
			}
			return indexed, true, err
		}

		if err := s.indexOne(&pending[i]); err != nil {
			// Запись могла исчезнуть между Pending и этим шагом.
			s.logger.Warn("Skipping entry during bulk indexing",
				zap.String("id", pending[i].ID()), zap.Error(err))
			continue
		}
		indexed++
		s.pause()
	}

	if indexed > 0 {
		s.finishPass(ctx)
	}
	return indexed, true, nil
}

// indexOne walks the entry's tokens and updates postings.
// An existing (entryId, term) posting accumulates frequency and positions;
// its relevance is not recomputed. A new posting is scored against the
// index state prior to its own insertion.
func (s *Service) indexOne(e *entry.Entry) error {
	tokens := token.Tokenize(e.Content())
	for i, term := range tokens {
		if p, ok := s.corpus.Posting(term, e.ID()); ok {
			s.corpus.PutPosting(p.Bumped(i))
			continue
		}
		score := relevance.Score(e.Importance(), s.corpus.TermTotal(term))
		s.corpus.PutPosting(posting.New(e.ID(), term, i, score))
	}

	if err := s.corpus.MarkIndexed(e.ID()); err != nil {
		return fmt.Errorf("mark indexed: %w", err)
	}
	return nil
}

// finishPass stamps the pass time and persists a snapshot. Persistence
// failures are logged and swallowed: in-memory state stays authoritative.
func (s *Service) finishPass(ctx context.Context) {
	s.corpus.SetLastIndexing(time.Now())
	if err := s.state.Save(ctx, s.corpus.Snapshot()); err != nil {
		s.logger.Warn("Failed to persist state after indexing", zap.Error(err))
	}
}
