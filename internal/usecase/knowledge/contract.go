package knowledge

import (
	"context"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/repository/corpus"
)

// Corpus is the authoritative in-memory state the knowledge service manages.
type Corpus interface {
	Insert(e entry.Entry) error
	Get(id string) (entry.Entry, error)
	Replace(e entry.Entry) error
	Remove(id string) error
	All() []entry.Entry
	Favorite(id string) error
	Unfavorite(id string) error
	Favorites() []entry.Entry
	IndexedCount() int
	TotalContentLength() int
	PostingCount() int
	LastIndexing() time.Time
	History() []string
	Snapshot() corpus.Snapshot
	Restore(s corpus.Snapshot)
	Reset()
}

// StateRepository persists, restores and clears the durable corpus snapshot.
type StateRepository interface {
	Save(ctx context.Context, s corpus.Snapshot) error
	Load(ctx context.Context) (corpus.Snapshot, error)
	Delete(ctx context.Context) error
}

// Indexer runs a single-entry indexing pass (auto-index on add).
type Indexer interface {
	IndexEntry(ctx context.Context, id string) (bool, error)
}
