// Package state persists corpus snapshots as one opaque JSON blob in the
// key-value store. The store never inspects the payload.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/memdex/internal/db"
	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/repository/corpus"
)

// store is the consumer interface for persisted state (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo implements snapshot persistence over a key-value store.
type Repo struct {
	store store
}

// New creates a state repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save serializes the snapshot and writes it at the state key.
func (r *Repo) Save(ctx context.Context, s corpus.Snapshot) error {
	data, err := json.Marshal(toDoc(s))
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := r.store.Set(ctx, domain.StateKey, data); err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot. Returns domain.ErrStateNotFound when
// nothing has been persisted yet.
func (r *Repo) Load(ctx context.Context) (corpus.Snapshot, error) {
	data, err := r.store.Get(ctx, domain.StateKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return corpus.Snapshot{}, domain.ErrStateNotFound
		}
		return corpus.Snapshot{}, fmt.Errorf("get state: %w", err)
	}

	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return corpus.Snapshot{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return fromDoc(doc), nil
}

// Delete removes the persisted snapshot.
func (r *Repo) Delete(ctx context.Context) error {
	if err := r.store.Del(ctx, domain.StateKey); err != nil {
		return fmt.Errorf("del state: %w", err)
	}
	return nil
}
