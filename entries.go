package memdex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/entry/patch"
)

// EntryService manages knowledge entries.
type EntryService struct {
	svc knowledgeUseCase
	obs *observer
}

// Add validates and stores a new entry. With WithAutoIndex the entry is
// indexed before Add returns.
func (s *EntryService) Add(ctx context.Context, d Draft) (_ Entry, err error) {
	start := time.Now()
	defer func() { s.obs.observe("entry.add", start, err) }()

	e, err := s.svc.Add(ctx, toInternalDraft(d))
	if err != nil {
		return Entry{}, fmt.Errorf("add entry: %w", err)
	}
	return fromInternalEntry(&e), nil
}

// Get retrieves an entry by id.
func (s *EntryService) Get(id string) (_ Entry, err error) {
	start := time.Now()
	defer func() { s.obs.observe("entry.get", start, err) }()

	e, err := s.svc.Get(id)
	if err != nil {
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return fromInternalEntry(&e), nil
}

// Update applies a partial update. A content change marks the entry
// unindexed until the next indexing pass.
func (s *EntryService) Update(ctx context.Context, id string, p EntryPatch) (_ Entry, err error) {
	start := time.Now()
	defer func() { s.obs.observe("entry.update", start, err) }()

	internal, err := toInternalPatch(p)
	if err != nil {
		return Entry{}, err
	}

	e, err := s.svc.Update(ctx, id, internal)
	if err != nil {
		return Entry{}, fmt.Errorf("update entry: %w", err)
	}
	return fromInternalEntry(&e), nil
}

// Delete removes an entry and all its index postings.
func (s *EntryService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("entry.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// List returns all entries.
func (s *EntryService) List() []Entry {
	return fromInternalEntries(s.svc.List())
}

// ByCategory returns entries in the given category.
func (s *EntryService) ByCategory(category string) []Entry {
	return fromInternalEntries(s.svc.ByCategory(category))
}

// ByTag returns entries carrying the given tag.
func (s *EntryService) ByTag(tag string) []Entry {
	return fromInternalEntries(s.svc.ByTag(tag))
}

// Favorites returns entries marked as favorite.
func (s *EntryService) Favorites() []Entry {
	return fromInternalEntries(s.svc.Favorites())
}

// Favorite marks an entry as favorite. Idempotent.
func (s *EntryService) Favorite(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("entry.favorite", start, err) }()

	if err = s.svc.Favorite(ctx, id); err != nil {
		return fmt.Errorf("favorite entry: %w", err)
	}
	return nil
}

// Unfavorite removes the favorite mark. Idempotent.
func (s *EntryService) Unfavorite(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("entry.unfavorite", start, err) }()

	if err = s.svc.Unfavorite(ctx, id); err != nil {
		return fmt.Errorf("unfavorite entry: %w", err)
	}
	return nil
}

func toInternalPatch(p EntryPatch) (patch.Patch, error) {
	var typ *entry.Type
	if p.Type != nil {
		t := entry.Type(*p.Type)
		typ = &t
	}
	internal, err := patch.New(p.Title, p.Content, p.Source, typ, p.Category, p.Tags, p.Importance)
	if err != nil {
		return patch.Patch{}, fmt.Errorf("build patch: %w: %w", domain.ErrInvalidEntry, err)
	}
	return internal, nil
}
