package memdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/memdex/internal/db"
	dbFile "github.com/kailas-cloud/memdex/internal/db/file"
	dbRedis "github.com/kailas-cloud/memdex/internal/db/redis"
	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/entry/patch"
	"github.com/kailas-cloud/memdex/internal/domain/search/result"
	"github.com/kailas-cloud/memdex/internal/repository/corpus"
	staterepo "github.com/kailas-cloud/memdex/internal/repository/state"
	healthuc "github.com/kailas-cloud/memdex/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/memdex/internal/usecase/indexer"
	ingestuc "github.com/kailas-cloud/memdex/internal/usecase/ingest"
	knowledgeuc "github.com/kailas-cloud/memdex/internal/usecase/knowledge"
	searchuc "github.com/kailas-cloud/memdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Внутренние интерфейсы для подмены в тестах.
type knowledgeUseCase interface {
	Add(ctx context.Context, d entry.Draft) (entry.Entry, error)
	Update(ctx context.Context, id string, p patch.Patch) (entry.Entry, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (entry.Entry, error)
	List() []entry.Entry
	ByCategory(category string) []entry.Entry
	ByTag(tag string) []entry.Entry
	Favorites() []entry.Entry
	Favorite(ctx context.Context, id string) error
	Unfavorite(ctx context.Context, id string) error
	Stats() domain.Stats
	Export(format string) ([]byte, error)
	Clear(ctx context.Context)
	Load(ctx context.Context)
	Save(ctx context.Context) error
}

type searchUseCase interface {
	Search(query string) []result.Result
	History() []string
}

type indexerUseCase interface {
	IndexEntry(ctx context.Context, id string) (bool, error)
	IndexAll(ctx context.Context) (int, bool, error)
	Busy() bool
}

type importUseCase interface {
	ImportFile(ctx context.Context, path string, typ entry.Type, category string, tags []string) (entry.Entry, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the memdex embedded engine entry point.
type Client struct {
	store      db.Store
	knowledge  knowledgeUseCase
	searchSvc  searchUseCase
	indexerSvc indexerUseCase
	importSvc  importUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a memdex Client, connects to the store and restores the
// persisted corpus snapshot. The provided context is used for the initial
// readiness check and snapshot load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("memdex: storage required (use WithRedis or WithFileStore)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("memdex: store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c := wireClient(store, cfg, obs)
	c.knowledge.Load(ctx)
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
			DB:       cfg.redisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("memdex: create redis store: %w", err)
		}
		return s, nil
	case "file":
		s, err := dbFile.NewStore(dbFile.Config{Dir: cfg.dir})
		if err != nil {
			return nil, fmt.Errorf("memdex: create file store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("memdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	corpusRepo := corpus.New()
	stateRepo := staterepo.New(store)

	// Internal services log through the observer surface, not zap.
	indexerSvc := indexeruc.New(corpusRepo, stateRepo, zap.NewNop())
	knowledgeSvc := knowledgeuc.New(corpusRepo, stateRepo, indexerSvc, zap.NewNop()).
		WithAutoIndex(cfg.autoIndex)

	importSvc := ingestuc.New(knowledgeSvc)
	if cfg.importMaxBytes > 0 {
		importSvc.WithMaxFileBytes(cfg.importMaxBytes)
	}

	return &Client{
		store:      store,
		knowledge:  knowledgeSvc,
		searchSvc:  searchuc.New(corpusRepo),
		indexerSvc: indexerSvc,
		importSvc:  importSvc,
		healthSvc:  healthuc.New(store, indexerSvc),
		obs:        obs,
	}
}

// Close releases the store. Mutating operations persist as they happen, so
// there is no final flush to lose.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Entries returns the entry management service.
func (c *Client) Entries() *EntryService {
	return &EntryService{svc: c.knowledge, obs: c.obs}
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}

// Index returns the indexing service.
func (c *Client) Index() *IndexService {
	return &IndexService{svc: c.indexerSvc, obs: c.obs}
}

// Stats returns aggregate corpus statistics, computed from current state.
func (c *Client) Stats() Stats {
	start := time.Now()
	defer func() { c.obs.observe("stats", start, nil) }()

	return fromInternalStats(c.knowledge.Stats())
}

// Export serializes all entries. Format "json" produces a document with
// entries, indices and stats; any other format produces a plain text digest.
func (c *Client) Export(format string) (_ []byte, err error) {
	start := time.Now()
	defer func() { c.obs.observe("export", start, err) }()

	data, err := c.knowledge.Export(format)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return data, nil
}

// Import reads a file from disk and stores it as a new entry.
func (c *Client) Import(ctx context.Context, path string, opts ImportOptions) (_ Entry, err error) {
	start := time.Now()
	defer func() { c.obs.observe("import", start, err) }()

	e, err := c.importSvc.ImportFile(ctx, path, entry.Type(opts.Type), opts.Category, opts.Tags)
	if err != nil {
		return Entry{}, fmt.Errorf("import: %w", err)
	}
	return fromInternalEntry(&e), nil
}

// Clear removes every entry, index posting and the persisted snapshot.
func (c *Client) Clear(ctx context.Context) {
	start := time.Now()
	defer func() { c.obs.observe("clear", start, nil) }()

	c.knowledge.Clear(ctx)
}

// Save forces a snapshot write. Mutating operations already persist on their
// own; Save is for explicit checkpoints.
func (c *Client) Save(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("save", start, err) }()

	if err = c.knowledge.Save(ctx); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Health checks the health of the engine and its store.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:   string(report.Status),
		Checks:   checks,
		Indexing: report.Indexing,
	}
}
