package state

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/posting"
	"github.com/kailas-cloud/memdex/internal/repository/corpus"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
	delFn func(ctx context.Context, key string) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func testSnapshot(t *testing.T) corpus.Snapshot {
	t.Helper()
	e, err := entry.New("e1", entry.Draft{
		Title:      "Neural Nets",
		Content:    "neural networks learn patterns",
		Source:     "notes.txt",
		Category:   "ml",
		Tags:       []string{"ai", "nets"},
		Importance: 80,
	}, testNow)
	if err != nil {
		t.Fatalf("entry.New: %v", err)
	}

	return corpus.Snapshot{
		Entries: []entry.Entry{e.WithIndexed(true)},
		Postings: []posting.Posting{
			posting.Reconstruct("e1", "neural", 1, []int{0}, 74),
			posting.Reconstruct("e1", "networks", 1, []int{1}, 74),
		},
		LastIndexing: testNow.Add(time.Minute),
		History:      []string{"neural"},
		Favorites:    []string{"e1"},
	}
}
