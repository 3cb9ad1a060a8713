package indexer

import (
	"context"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/posting"
	"github.com/kailas-cloud/memdex/internal/repository/corpus"
)

// Corpus is the entry and posting state an indexing pass operates on.
type Corpus interface {
	Get(id string) (entry.Entry, error)
	Pending() []entry.Entry
	MarkIndexed(id string) error
	SetLastIndexing(t time.Time)
	Posting(term, entryID string) (posting.Posting, bool)
	PutPosting(p posting.Posting)
	TermTotal(term string) int
	Snapshot() corpus.Snapshot
}

// StateSaver persists corpus snapshots after a completed pass.
type StateSaver interface {
	Save(ctx context.Context, s corpus.Snapshot) error
}
