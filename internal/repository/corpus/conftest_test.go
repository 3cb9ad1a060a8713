package corpus

import (
	"testing"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/posting"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testEntry(t *testing.T, id string, createdAt time.Time) entry.Entry {
	t.Helper()
	e, err := entry.New(id, entry.Draft{
		Title:      "Entry " + id,
		Content:    "content of " + id,
		Importance: 50,
	}, createdAt)
	if err != nil {
		t.Fatalf("entry.New: %v", err)
	}
	return e
}

func mustInsert(t *testing.T, r *Repo, e entry.Entry) {
	t.Helper()
	if err := r.Insert(e); err != nil {
		t.Fatalf("Insert(%s): %v", e.ID(), err)
	}
}

func testPosting(entryID, term string, frequency int) posting.Posting {
	positions := make([]int, frequency)
	for i := range positions {
		positions[i] = i
	}
	return posting.Reconstruct(entryID, term, frequency, positions, 60)
}
