package memdex

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/entry/patch"
	"github.com/kailas-cloud/memdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/memdex/internal/usecase/health"
)

// --- EntryService ---

func TestEntryService_Add(t *testing.T) {
	var got entry.Draft
	mock := &mockKnowledgeUC{
		addFn: func(_ context.Context, d entry.Draft) (entry.Entry, error) {
			got = d
			return entry.New("e1", d, testNow())
		},
	}

	svc := &EntryService{svc: mock}
	e, err := svc.Add(context.Background(), Draft{
		Title:      "Neural Nets",
		Content:    "neural networks learn patterns",
		Category:   "ml",
		Tags:       []string{"ai"},
		Importance: 80,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Neural Nets" || got.Importance != 80 {
		t.Errorf("draft passed through = %+v", got)
	}
	if e.ID != "e1" || e.Type != TypeText {
		t.Errorf("entry = %+v", e)
	}
	if e.Indexed {
		t.Error("new entry must not be indexed")
	}
}

func TestEntryService_Add_Error(t *testing.T) {
	mock := &mockKnowledgeUC{
		addFn: func(_ context.Context, _ entry.Draft) (entry.Entry, error) {
			return entry.Entry{}, domain.ErrInvalidEntry
		},
	}

	svc := &EntryService{svc: mock}
	_, err := svc.Add(context.Background(), Draft{})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("err = %v, want ErrInvalidEntry", err)
	}
}

func TestEntryService_Get(t *testing.T) {
	want := testInternalEntry(t, "e1", "Title")
	mock := &mockKnowledgeUC{
		getFn: func(id string) (entry.Entry, error) {
			if id != "e1" {
				t.Errorf("id = %q, want e1", id)
			}
			return want, nil
		},
	}

	svc := &EntryService{svc: mock}
	e, err := svc.Get("e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Title != "Title" {
		t.Errorf("Title = %q", e.Title)
	}
}

func TestEntryService_Get_NotFound(t *testing.T) {
	mock := &mockKnowledgeUC{
		getFn: func(_ string) (entry.Entry, error) {
			return entry.Entry{}, domain.ErrEntryNotFound
		},
	}

	svc := &EntryService{svc: mock}
	_, err := svc.Get("missing")
	// Сентинел должен пережить обёртку.
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestEntryService_Update(t *testing.T) {
	var got patch.Patch
	mock := &mockKnowledgeUC{
		updateFn: func(_ context.Context, id string, p patch.Patch) (entry.Entry, error) {
			got = p
			return testInternalEntry(t, id, "Updated"), nil
		},
	}

	svc := &EntryService{svc: mock}
	title := "Updated"
	e, err := svc.Update(context.Background(), "e1", EntryPatch{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HasContent() {
		t.Error("title-only patch must not carry a content change")
	}
	if e.Title != "Updated" {
		t.Errorf("Title = %q", e.Title)
	}
}

func TestEntryService_Update_EmptyPatch(t *testing.T) {
	called := false
	mock := &mockKnowledgeUC{
		updateFn: func(_ context.Context, _ string, _ patch.Patch) (entry.Entry, error) {
			called = true
			return entry.Entry{}, nil
		},
	}

	svc := &EntryService{svc: mock}
	_, err := svc.Update(context.Background(), "e1", EntryPatch{})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("err = %v, want ErrInvalidEntry", err)
	}
	if called {
		t.Error("use case must not be called for an invalid patch")
	}
}

func TestEntryService_Update_InvalidType(t *testing.T) {
	mock := &mockKnowledgeUC{}

	svc := &EntryService{svc: mock}
	typ := EntryType("yaml")
	_, err := svc.Update(context.Background(), "e1", EntryPatch{Type: &typ})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("err = %v, want ErrInvalidEntry", err)
	}
}

func TestEntryService_Delete_Error(t *testing.T) {
	mock := &mockKnowledgeUC{
		deleteFn: func(_ context.Context, _ string) error {
			return domain.ErrEntryNotFound
		},
	}

	svc := &EntryService{svc: mock}
	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestEntryService_List(t *testing.T) {
	mock := &mockKnowledgeUC{
		listFn: func() []entry.Entry {
			return []entry.Entry{
				testInternalEntry(t, "a", "A"),
				testInternalEntry(t, "b", "B"),
			}
		},
	}

	svc := &EntryService{svc: mock}
	list := svc.List()
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("list = %+v", list)
	}
}

func TestEntryService_FavoriteRoundTrip(t *testing.T) {
	var favored, unfavored string
	mock := &mockKnowledgeUC{
		favoriteFn: func(_ context.Context, id string) error {
			favored = id
			return nil
		},
		unfavoriteFn: func(_ context.Context, id string) error {
			unfavored = id
			return nil
		},
	}

	svc := &EntryService{svc: mock}
	if err := svc.Favorite(context.Background(), "e1"); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if err := svc.Unfavorite(context.Background(), "e1"); err != nil {
		t.Fatalf("unfavorite: %v", err)
	}
	if favored != "e1" || unfavored != "e1" {
		t.Errorf("favored = %q, unfavored = %q", favored, unfavored)
	}
}

// --- SearchService ---

func TestSearchService_Query(t *testing.T) {
	e := testInternalEntry(t, "e1", "Neural Nets")
	mock := &mockSearchUC{
		searchFn: func(query string) []result.Result {
			if query != "neural" {
				t.Errorf("query = %q, want neural", query)
			}
			return []result.Result{result.New(e, 74)}
		},
	}

	svc := &SearchService{svc: mock}
	hits := svc.Query("neural")
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].Entry.ID != "e1" || hits[0].Score != 74 {
		t.Errorf("hit = %+v", hits[0])
	}
}

func TestSearchService_History(t *testing.T) {
	mock := &mockSearchUC{
		historyFn: func() []string { return []string{"first", "second"} },
	}

	svc := &SearchService{svc: mock}
	h := svc.History()
	if len(h) != 2 || h[0] != "first" {
		t.Fatalf("history = %v", h)
	}
}

// --- IndexService ---

func TestIndexService_Entry(t *testing.T) {
	mock := &mockIndexerUC{
		indexEntryFn: func(_ context.Context, id string) (bool, error) {
			return true, nil
		},
	}

	svc := &IndexService{svc: mock}
	report, err := svc.Entry(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Started || report.Indexed != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestIndexService_Entry_Dropped(t *testing.T) {
	mock := &mockIndexerUC{
		indexEntryFn: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
	}

	svc := &IndexService{svc: mock}
	report, err := svc.Entry(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Сброшенная заявка — не ошибка, просто Started=false.
	if report.Started || report.Indexed != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestIndexService_All(t *testing.T) {
	mock := &mockIndexerUC{
		indexAllFn: func(_ context.Context) (int, bool, error) {
			return 7, true, nil
		},
	}

	svc := &IndexService{svc: mock}
	report, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Started || report.Indexed != 7 {
		t.Errorf("report = %+v", report)
	}
}

func TestIndexService_All_Interrupted(t *testing.T) {
	mock := &mockIndexerUC{
		indexAllFn: func(_ context.Context) (int, bool, error) {
			return 3, true, context.Canceled
		},
	}

	svc := &IndexService{svc: mock}
	report, err := svc.All(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	// Частичный прогресс виден даже при прерывании.
	if report.Indexed != 3 {
		t.Errorf("Indexed = %d, want 3", report.Indexed)
	}
}

func TestIndexService_Busy(t *testing.T) {
	mock := &mockIndexerUC{busyFn: func() bool { return true }}

	svc := &IndexService{svc: mock}
	if !svc.Busy() {
		t.Error("Busy() = false, want true")
	}
}

// --- Client-level operations ---

func TestClient_Stats(t *testing.T) {
	mock := &mockKnowledgeUC{
		statsFn: func() domain.Stats {
			return domain.Stats{TotalEntries: 3, TotalKnowledge: 42, MeanImportance: 55.5}
		},
	}

	c := testClient(mock, nil, nil, nil, nil)
	s := c.Stats()
	if s.TotalEntries != 3 || s.TotalKnowledge != 42 || s.MeanImportance != 55.5 {
		t.Errorf("stats = %+v", s)
	}
}

func TestClient_Export(t *testing.T) {
	mock := &mockKnowledgeUC{
		exportFn: func(format string) ([]byte, error) {
			if format != "json" {
				t.Errorf("format = %q, want json", format)
			}
			return []byte(`{"entries":[]}`), nil
		},
	}

	c := testClient(mock, nil, nil, nil, nil)
	data, err := c.Export("json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty export")
	}
}

func TestClient_Export_Error(t *testing.T) {
	mock := &mockKnowledgeUC{
		exportFn: func(_ string) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}

	c := testClient(mock, nil, nil, nil, nil)
	if _, err := c.Export("json"); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_Import(t *testing.T) {
	mock := &mockImportUC{
		importFn: func(_ context.Context, path string, typ entry.Type, category string, tags []string) (entry.Entry, error) {
			if path != "/tmp/notes.txt" || typ != entry.TypeText || category != "ops" {
				t.Errorf("args = %q %q %q %v", path, typ, category, tags)
			}
			return entry.New("e1", entry.Draft{Title: "notes", Content: "imported"}, testNow())
		},
	}

	c := testClient(nil, nil, nil, mock, nil)
	e, err := c.Import(context.Background(), "/tmp/notes.txt", ImportOptions{Type: TypeText, Category: "ops"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Title != "notes" {
		t.Errorf("Title = %q", e.Title)
	}
}

func TestClient_Import_SentinelSurvives(t *testing.T) {
	mock := &mockImportUC{
		importFn: func(_ context.Context, _ string, _ entry.Type, _ string, _ []string) (entry.Entry, error) {
			return entry.Entry{}, domain.NewImportSizeError(100, 10)
		},
	}

	c := testClient(nil, nil, nil, mock, nil)
	_, err := c.Import(context.Background(), "/tmp/big.bin", ImportOptions{})
	if !errors.Is(err, ErrImportTooLarge) {
		t.Fatalf("err = %v, want ErrImportTooLarge", err)
	}
}

func TestClient_Clear(t *testing.T) {
	cleared := false
	mock := &mockKnowledgeUC{
		clearFn: func(_ context.Context) { cleared = true },
	}

	c := testClient(mock, nil, nil, nil, nil)
	c.Clear(context.Background())
	if !cleared {
		t.Error("Clear did not reach the use case")
	}
}

func TestClient_Health(t *testing.T) {
	mock := &mockHealthUC{
		checkFn: func(_ context.Context) healthuc.Report {
			return healthuc.Report{
				Status:   healthuc.Degraded,
				Checks:   map[string]healthuc.CheckResult{"database": healthuc.CheckError},
				Indexing: true,
			}
		},
	}

	c := testClient(nil, nil, nil, nil, mock)
	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Checks["database"] != "error" || !h.Indexing {
		t.Errorf("health = %+v", h)
	}
}
