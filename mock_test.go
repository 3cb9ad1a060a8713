package memdex

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/entry/patch"
	"github.com/kailas-cloud/memdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/memdex/internal/usecase/health"
)

// --- knowledgeUseCase mock ---

type mockKnowledgeUC struct {
	addFn        func(ctx context.Context, d entry.Draft) (entry.Entry, error)
	updateFn     func(ctx context.Context, id string, p patch.Patch) (entry.Entry, error)
	deleteFn     func(ctx context.Context, id string) error
	getFn        func(id string) (entry.Entry, error)
	listFn       func() []entry.Entry
	byCategoryFn func(category string) []entry.Entry
	byTagFn      func(tag string) []entry.Entry
	favoritesFn  func() []entry.Entry
	favoriteFn   func(ctx context.Context, id string) error
	unfavoriteFn func(ctx context.Context, id string) error
	statsFn      func() domain.Stats
	exportFn     func(format string) ([]byte, error)
	clearFn      func(ctx context.Context)
	loadFn       func(ctx context.Context)
	saveFn       func(ctx context.Context) error
}

func (m *mockKnowledgeUC) Add(ctx context.Context, d entry.Draft) (entry.Entry, error) {
	return m.addFn(ctx, d)
}

func (m *mockKnowledgeUC) Update(ctx context.Context, id string, p patch.Patch) (entry.Entry, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockKnowledgeUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockKnowledgeUC) Get(id string) (entry.Entry, error) {
	return m.getFn(id)
}

func (m *mockKnowledgeUC) List() []entry.Entry {
	return m.listFn()
}

func (m *mockKnowledgeUC) ByCategory(category string) []entry.Entry {
	return m.byCategoryFn(category)
}

func (m *mockKnowledgeUC) ByTag(tag string) []entry.Entry {
	return m.byTagFn(tag)
}

func (m *mockKnowledgeUC) Favorites() []entry.Entry {
	return m.favoritesFn()
}

func (m *mockKnowledgeUC) Favorite(ctx context.Context, id string) error {
	return m.favoriteFn(ctx, id)
}

func (m *mockKnowledgeUC) Unfavorite(ctx context.Context, id string) error {
	return m.unfavoriteFn(ctx, id)
}

func (m *mockKnowledgeUC) Stats() domain.Stats {
	return m.statsFn()
}

func (m *mockKnowledgeUC) Export(format string) ([]byte, error) {
	return m.exportFn(format)
}

func (m *mockKnowledgeUC) Clear(ctx context.Context) {
	m.clearFn(ctx)
}

func (m *mockKnowledgeUC) Load(ctx context.Context) {
	if m.loadFn != nil {
		m.loadFn(ctx)
	}
}

func (m *mockKnowledgeUC) Save(ctx context.Context) error {
	return m.saveFn(ctx)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(query string) []result.Result
	historyFn func() []string
}

func (m *mockSearchUC) Search(query string) []result.Result {
	return m.searchFn(query)
}

func (m *mockSearchUC) History() []string {
	return m.historyFn()
}

// --- indexerUseCase mock ---

type mockIndexerUC struct {
	indexEntryFn func(ctx context.Context, id string) (bool, error)
	indexAllFn   func(ctx context.Context) (int, bool, error)
	busyFn       func() bool
}

func (m *mockIndexerUC) IndexEntry(ctx context.Context, id string) (bool, error) {
	return m.indexEntryFn(ctx, id)
}

func (m *mockIndexerUC) IndexAll(ctx context.Context) (int, bool, error) {
	return m.indexAllFn(ctx)
}

func (m *mockIndexerUC) Busy() bool {
	return m.busyFn()
}

// --- importUseCase mock ---

type mockImportUC struct {
	importFn func(ctx context.Context, path string, typ entry.Type, category string, tags []string) (entry.Entry, error)
}

func (m *mockImportUC) ImportFile(
	ctx context.Context, path string, typ entry.Type, category string, tags []string,
) (entry.Entry, error) {
	return m.importFn(ctx, path, typ, category, tags)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// --- helpers ---

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func testInternalEntry(t *testing.T, id, title string) entry.Entry {
	t.Helper()
	e, err := entry.New(id, entry.Draft{Title: title, Content: "content of " + title, Importance: 50}, testNow())
	if err != nil {
		t.Fatalf("build entry: %v", err)
	}
	return e
}

func testClient(
	kn knowledgeUseCase,
	search searchUseCase,
	indexer indexerUseCase,
	importer importUseCase,
	health healthUseCase,
) *Client {
	return &Client{
		knowledge:  kn,
		searchSvc:  search,
		indexerSvc: indexer,
		importSvc:  importer,
		healthSvc:  health,
	}
}
