// Package knowledge implements entry CRUD, favorites, aggregate stats and
// state persistence on top of the in-memory corpus.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/entry/patch"
)

// Service handles knowledge entry operations.
type Service struct {
	corpus    Corpus
	state     StateRepository
	indexer   Indexer
	logger    *zap.Logger
	autoIndex bool
}

// New creates a knowledge service.
func New(c Corpus, state StateRepository, indexer Indexer, logger *zap.Logger) *Service {
	return &Service{corpus: c, state: state, indexer: indexer, logger: logger}
}

// WithAutoIndex makes Add index the new entry immediately.
func (s *Service) WithAutoIndex(enabled bool) *Service {
	s.autoIndex = enabled
	return s
}

// Add validates, stores and (when auto-indexing is on) indexes a new entry.
func (s *Service) Add(ctx context.Context, d entry.Draft) (entry.Entry, error) {
	e, err := entry.New(uuid.New().String(), d, time.Now())
	if err != nil {
		return entry.Entry{}, fmt.Errorf("validate entry: %w: %w", domain.ErrInvalidEntry, err)
	}

	if err := s.corpus.Insert(e); err != nil {
		return entry.Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	persisted := false
	if s.autoIndex {
		ran, err := s.indexer.IndexEntry(ctx, e.ID())
		if err != nil {
			s.logger.Warn("Auto-indexing failed",
				zap.String("entry_id", e.ID()),
				zap.Error(err),
			)
		}
		// A completed pass already persisted the state.
		persisted = ran && err == nil
		if fresh, getErr := s.corpus.Get(e.ID()); getErr == nil {
			e = fresh
		}
	}

	if !persisted {
		s.persist(ctx)
	}
	return e, nil
}

// Update applies a partial update. A content change drops the indexed flag:
// stale postings stay behind until the next indexing pass covers the entry.
func (s *Service) Update(ctx context.Context, id string, p patch.Patch) (entry.Entry, error) {
	e, err := s.corpus.Get(id)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get entry: %w", err)
	}

	updated, contentChanged := p.Apply(e)
	if contentChanged {
		updated = updated.WithIndexed(false)
	}

	if err := s.corpus.Replace(updated); err != nil {
		return entry.Entry{}, fmt.Errorf("replace entry: %w", err)
	}

	s.persist(ctx)
	return updated, nil
}

// Delete removes an entry together with its postings and favorite mark.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.corpus.Remove(id); err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}
	s.persist(ctx)
	return nil
}

// Get retrieves an entry by id. Plain reads do not touch access metadata;
// only search results do.
func (s *Service) Get(id string) (entry.Entry, error) {
	e, err := s.corpus.Get(id)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// List returns all entries ordered by creation time, then id.
func (s *Service) List() []entry.Entry {
	return s.corpus.All()
}

// ByCategory returns entries with the given category, in list order.
func (s *Service) ByCategory(category string) []entry.Entry {
	category = strings.TrimSpace(category)
	out := make([]entry.Entry, 0)
	for _, e := range s.corpus.All() {
		if e.Category() == category {
			out = append(out, e)
		}
	}
	return out
}

// ByTag returns entries carrying the given tag, in list order.
func (s *Service) ByTag(tag string) []entry.Entry {
	tag = strings.TrimSpace(tag)
	out := make([]entry.Entry, 0)
	for _, e := range s.corpus.All() {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// Favorite marks an entry as favorite. Marking twice is not an error.
func (s *Service) Favorite(ctx context.Context, id string) error {
	if err := s.corpus.Favorite(id); err != nil {
		return fmt.Errorf("favorite entry: %w", err)
	}
	s.persist(ctx)
	return nil
}

// Unfavorite removes the favorite mark.
func (s *Service) Unfavorite(ctx context.Context, id string) error {
	if err := s.corpus.Unfavorite(id); err != nil {
		return fmt.Errorf("unfavorite entry: %w", err)
	}
	s.persist(ctx)
	return nil
}

// Favorites returns favorite entries in the order they were marked.
func (s *Service) Favorites() []entry.Entry {
	return s.corpus.Favorites()
}

// Stats computes a point-in-time aggregate over the corpus.
func (s *Service) Stats() domain.Stats {
	all := s.corpus.All()

	byCategory := make(map[string]int)
	byTag := make(map[string]int)
	importanceSum := 0
	for i := range all {
		e := &all[i]
		if e.Category() != "" {
			byCategory[e.Category()]++
		}
		for _, tag := range e.Tags() {
			byTag[tag]++
		}
		importanceSum += e.Importance()
	}

	mean := 0.0
	if len(all) > 0 {
		mean = float64(importanceSum) / float64(len(all))
	}

	return domain.Stats{
		TotalEntries:   len(all),
		IndexedEntries: s.corpus.IndexedCount(),
		TotalPostings:  s.corpus.PostingCount(),
		TotalKnowledge: s.corpus.TotalContentLength(),
		ByCategory:     byCategory,
		ByTag:          byTag,
		MeanImportance: mean,
		FavoriteCount:  len(s.corpus.Favorites()),
		HistoryLength:  len(s.corpus.History()),
		LastIndexing:   s.corpus.LastIndexing(),
	}
}

// Load restores the corpus from the durable store. A missing snapshot is a
// fresh start; an unreadable one is logged and the engine starts empty.
// Once running, memory is the source of truth.
func (s *Service) Load(ctx context.Context) {
	snap, err := s.state.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrStateNotFound) {
			s.logger.Warn("Failed to load persisted state, starting empty", zap.Error(err))
		}
		return
	}
	s.corpus.Restore(snap)
}

// Save writes the current state to the durable store. Unlike the implicit
// after-mutation persistence this surfaces the error: callers flush on
// shutdown and want to know about data loss.
func (s *Service) Save(ctx context.Context) error {
	if err := s.state.Save(ctx, s.corpus.Snapshot()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Clear drops every entry, posting, history record and favorite mark, and
// removes the persisted snapshot.
func (s *Service) Clear(ctx context.Context) {
	s.corpus.Reset()
	if err := s.state.Delete(ctx); err != nil {
		s.logger.Warn("Failed to remove persisted state", zap.Error(err))
	}
}

// persist writes the state after a mutation, best effort.
func (s *Service) persist(ctx context.Context) {
	if err := s.state.Save(ctx, s.corpus.Snapshot()); err != nil {
		s.logger.Warn("Failed to persist state", zap.Error(err))
	}
}
