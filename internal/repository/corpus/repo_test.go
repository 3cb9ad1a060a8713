package corpus

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain"
)

// --- entries ---

func TestInsert_Duplicate(t *testing.T) {
	r := New()
	e := testEntry(t, "e1", testNow)

	mustInsert(t, r, e)
	if err := r.Insert(e); !errors.Is(err, domain.ErrEntryExists) {
		t.Fatalf("expected ErrEntryExists, got %v", err)
	}
}

func TestGet_Missing(t *testing.T) {
	r := New()
	if _, err := r.Get("nope"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestReplace_MissingEntry(t *testing.T) {
	r := New()
	e := testEntry(t, "e1", testNow)

	if err := r.Replace(e); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestReplace_Overwrites(t *testing.T) {
	r := New()
	mustInsert(t, r, testEntry(t, "e1", testNow))

	base := testEntry(t, "e1", testNow)
	updated := base.WithIndexed(true)
	if err := r.Replace(updated); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := r.Get("e1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Indexed() {
		t.Error("expected replaced entry to be indexed")
	}
}

func TestRemove_DropsPostingsAndFavorite(t *testing.T) {
	r := New()
	mustInsert(t, r, testEntry(t, "e1", testNow))
	mustInsert(t, r, testEntry(t, "e2", testNow))
	r.PutPosting(testPosting("e1", "neural", 2))
	r.PutPosting(testPosting("e2", "neural", 1))
	r.PutPosting(testPosting("e1", "networks", 1))
	if err := r.Favorite("e1"); err != nil {
		t.Fatalf("Favorite: %v", err)
	}

	if err := r.Remove("e1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := r.Get("e1"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if _, ok := r.Posting("neural", "e1"); ok {
		t.Error("expected posting (neural, e1) to be removed")
	}
	if _, ok := r.Posting("networks", "e1"); ok {
		t.Error("expected posting (networks, e1) to be removed")
	}
	// Постинг другой записи остаётся.
	if _, ok := r.Posting("neural", "e2"); !ok {
		t.Error("expected posting (neural, e2) to survive")
	}
	if len(r.Favorites()) != 0 {
		t.Error("expected favorites to be empty after remove")
	}
}

func TestRemove_Missing(t *testing.T) {
	r := New()
	if err := r.Remove("nope"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestAll_OrderedByCreatedAtThenID(t *testing.T) {
	r := New()
	mustInsert(t, r, testEntry(t, "b", testNow.Add(time.Minute)))
	mustInsert(t, r, testEntry(t, "c", testNow))
	mustInsert(t, r, testEntry(t, "a", testNow))

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	wantOrder := []string{"a", "c", "b"}
	for i, want := range wantOrder {
		if all[i].ID() != want {
			t.Errorf("all[%d].ID() = %s, want %s", i, all[i].ID(), want)
		}
	}
}

func TestPending_SkipsIndexed(t *testing.T) {
	r := New()
	mustInsert(t, r, testEntry(t, "e1", testNow))
	mustInsert(t, r, testEntry(t, "e2", testNow.Add(time.Second)))
	if err := r.MarkIndexed("e1"); err != nil {
		t.Fatalf("MarkIndexed: %v", err)
	}

	pending := r.Pending()
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending entry, got %d", len(pending))
	}
	if pending[0].ID() != "e2" {
		t.Errorf("pending[0].ID() = %s, want e2", pending[0].ID())
	}
}

func TestTouch_BumpsAccess(t *testing.T) {
	r := New()
	mustInsert(t, r, testEntry(t, "e1", testNow))

	later := testNow.Add(time.Hour)
	touched, err := r.Touch("e1", later)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if touched.AccessCount() != 1 {
		t.Errorf("AccessCount() = %d, want 1", touched.AccessCount())
	}
	if !touched.LastAccessed().Equal(later) {
		t.Errorf("LastAccessed() = %v, want %v", touched.LastAccessed(), later)
	}

	// Изменение видно при следующем чтении.
	got, err := r.Get("e1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.AccessCount() != 1 {
		t.Errorf("stored AccessCount() = %d, want 1", got.AccessCount())
	}
}

func TestCounts(t *testing.T) {
	r := New()
	mustInsert(t, r, testEntry(t, "e1", testNow))
	mustInsert(t, r, testEntry(t, "e2", testNow))
	if err := r.MarkIndexed("e2"); err != nil {
		t.Fatalf("MarkIndexed: %v", err)
	}

	if r.EntryCount() != 2 {
		t.Errorf("EntryCount() = %d, want 2", r.EntryCount())
	}
	if r.IndexedCount() != 1 {
		t.Errorf("IndexedCount() = %d, want 1", r.IndexedCount())
	}
	want := len("content of e1") + len("content of e2")
	if r.TotalContentLength() != want {
		t.Errorf("TotalContentLength() = %d, want %d", r.TotalContentLength(), want)
	}
}

// --- history ---

func TestHistory_RingEviction(t *testing.T) {
	r := New()
	for i := 0; i < maxHistory+10; i++ {
		r.AppendQuery(fmt.Sprintf("query %d", i))
	}

	h := r.History()
	if len(h) != maxHistory {
		t.Fatalf("expected history length %d, got %d", maxHistory, len(h))
	}
	// Старейшие запросы вытеснены.
	if h[0] != "query 10" {
		t.Errorf("h[0] = %q, want %q", h[0], "query 10")
	}
	if h[len(h)-1] != fmt.Sprintf("query %d", maxHistory+9) {
		t.Errorf("h[last] = %q", h[len(h)-1])
	}
}

func TestHistory_ReturnsCopy(t *testing.T) {
	r := New()
	r.AppendQuery("original")

	h := r.History()
	h[0] = "mutated"

	if r.History()[0] != "original" {
		t.Error("History must return a copy")
	}
}

// --- favorites ---

func TestFavorite_Idempotent(t *testing.T) {
	r := New()
	mustInsert(t, r, testEntry(t, "e1", testNow))

	if err := r.Favorite("e1"); err != nil {
		t.Fatalf("Favorite: %v", err)
	}
	if err := r.Favorite("e1"); err != nil {
		t.Fatalf("Favorite twice: %v", err)
	}
	if len(r.Favorites()) != 1 {
		t.Errorf("expected 1 favorite, got %d", len(r.Favorites()))
	}
}

func TestFavorite_MissingEntry(t *testing.T) {
	r := New()
	if err := r.Favorite("nope"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestFavorites_PreservesOrder(t *testing.T) {
	r := New()
	mustInsert(t, r, testEntry(t, "e1", testNow))
	mustInsert(t, r, testEntry(t, "e2", testNow))
	mustInsert(t, r, testEntry(t, "e3", testNow))

	for _, id := range []string{"e3", "e1", "e2"} {
		if err := r.Favorite(id); err != nil {
			t.Fatalf("Favorite(%s): %v", id, err)
		}
	}

	favs := r.Favorites()
	wantOrder := []string{"e3", "e1", "e2"}
	for i, want := range wantOrder {
		if favs[i].ID() != want {
			t.Errorf("favs[%d].ID() = %s, want %s", i, favs[i].ID(), want)
		}
	}
}

func TestUnfavorite(t *testing.T) {
	r := New()
	mustInsert(t, r, testEntry(t, "e1", testNow))

	if err := r.Favorite("e1"); err != nil {
		t.Fatalf("Favorite: %v", err)
	}
	if err := r.Unfavorite("e1"); err != nil {
		t.Fatalf("Unfavorite: %v", err)
	}
	if len(r.Favorites()) != 0 {
		t.Error("expected no favorites")
	}

	// Повторное снятие не ошибка.
	if err := r.Unfavorite("e1"); err != nil {
		t.Errorf("Unfavorite twice: %v", err)
	}
}
