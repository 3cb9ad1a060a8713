package chi

import (
	"context"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/entry/patch"
	"github.com/kailas-cloud/memdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/memdex/internal/usecase/health"
)

// Knowledge is the entry management surface consumed by the HTTP layer.
type Knowledge interface {
	Add(ctx context.Context, d entry.Draft) (entry.Entry, error)
	Update(ctx context.Context, id string, p patch.Patch) (entry.Entry, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (entry.Entry, error)
	List() []entry.Entry
	ByCategory(category string) []entry.Entry
	ByTag(tag string) []entry.Entry
	Favorite(ctx context.Context, id string) error
	Unfavorite(ctx context.Context, id string) error
	Favorites() []entry.Entry
	Stats() domain.Stats
	Export(format string) ([]byte, error)
	Clear(ctx context.Context)
}

// Searcher answers ranked queries and exposes the query history.
type Searcher interface {
	Search(query string) []result.Result
	History() []string
}

// Indexer runs indexing passes on demand.
type Indexer interface {
	IndexEntry(ctx context.Context, id string) (bool, error)
	IndexAll(ctx context.Context) (int, bool, error)
}

// Importer ingests external files as entries.
type Importer interface {
	ImportFile(ctx context.Context, path string, typ entry.Type, category string, tags []string) (entry.Entry, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
