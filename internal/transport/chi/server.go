package chi

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/entry/patch"
	healthuc "github.com/kailas-cloud/memdex/internal/usecase/health"
	knowledgeuc "github.com/kailas-cloud/memdex/internal/usecase/knowledge"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeEntryNotFound      = "entry_not_found"
	codeEntryExists        = "entry_already_exists"
	codeMalformedImport    = "malformed_import"
	codeImportTooLarge     = "import_too_large"
	codeUnsupportedImport  = "unsupported_import_type"
	codeIndexingInProgress = "indexing_in_progress"
	codeInternalError      = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the knowledge engine over HTTP.
type Server struct {
	knowledge     Knowledge
	search        Searcher
	indexer       Indexer
	importer      Importer
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	knowledge Knowledge,
	search Searcher,
	indexer Indexer,
	importer Importer,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		knowledge: knowledge,
		search:    search,
		indexer:   indexer,
		importer:  importer,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		importSizeHandler,
		sentinelHandler(domain.ErrEntryNotFound, http.StatusNotFound, codeEntryNotFound),
		sentinelHandler(domain.ErrEntryExists, http.StatusConflict, codeEntryExists),
		sentinelHandler(domain.ErrInvalidEntry, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrMalformedImport, http.StatusBadRequest, codeMalformedImport),
		sentinelHandler(domain.ErrUnsupportedImport, http.StatusUnsupportedMediaType, codeUnsupportedImport),
	}
	return s
}

// Routes registers every API route on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", s.ListEntries)
			r.Post("/", s.CreateEntry)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetEntry)
				r.Patch("/", s.PatchEntry)
				r.Delete("/", s.DeleteEntry)
				r.Post("/index", s.IndexEntry)
				r.Put("/favorite", s.FavoriteEntry)
				r.Delete("/favorite", s.UnfavoriteEntry)
			})
		})
		r.Get("/favorites", s.ListFavorites)
		r.Post("/search", s.SearchEntries)
		r.Get("/search/history", s.SearchHistory)
		r.Post("/index", s.IndexAllEntries)
		r.Get("/stats", s.GetStats)
		r.Get("/export", s.ExportEntries)
		r.Post("/import", s.ImportFile)
		r.Delete("/state", s.ClearState)
	})
}

// CreateEntry handles POST /api/v1/entries.
func (s *Server) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	typ, err := entry.ParseType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	e, err := s.knowledge.Add(r.Context(), entry.Draft{
		Title:      req.Title,
		Content:    req.Content,
		Source:     req.Source,
		Type:       typ,
		Category:   req.Category,
		Tags:       req.Tags,
		Importance: req.Importance,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/entries/"+e.ID())
	writeJSON(w, http.StatusCreated, entryToDTO(&e))
}

// ListEntries handles GET /api/v1/entries with optional category/tag filters.
func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var entries []entry.Entry
	switch {
	case q.Get("category") != "":
		entries = s.knowledge.ByCategory(q.Get("category"))
	case q.Get("tag") != "":
		entries = s.knowledge.ByTag(q.Get("tag"))
	default:
		entries = s.knowledge.List()
	}

	writeJSON(w, http.StatusOK, entryListToDTO(entries))
}

// GetEntry handles GET /api/v1/entries/{id}.
func (s *Server) GetEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.knowledge.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entryToDTO(&e))
}

// PatchEntry handles PATCH /api/v1/entries/{id}.
func (s *Server) PatchEntry(w http.ResponseWriter, r *http.Request) {
	var req patchEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := patchFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	e, err := s.knowledge.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entryToDTO(&e))
}

// DeleteEntry handles DELETE /api/v1/entries/{id}.
func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.knowledge.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FavoriteEntry handles PUT /api/v1/entries/{id}/favorite.
func (s *Server) FavoriteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.knowledge.Favorite(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnfavoriteEntry handles DELETE /api/v1/entries/{id}/favorite.
func (s *Server) UnfavoriteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.knowledge.Unfavorite(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFavorites handles GET /api/v1/favorites.
func (s *Server) ListFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entryListToDTO(s.knowledge.Favorites()))
}

// SearchEntries handles POST /api/v1/search.
func (s *Server) SearchEntries(w http.ResponseWriter, r *http.Request) {
	var req searchEntriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results := s.search.Search(req.Query)

	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToDTO(&results[i])
	}

	writeJSON(w, http.StatusOK, searchEntriesResponse{
		Query: req.Query,
		Items: items,
		Total: len(items),
	})
}

// SearchHistory handles GET /api/v1/search/history.
func (s *Server) SearchHistory(w http.ResponseWriter, r *http.Request) {
	h := s.search.History()
	if h == nil {
		h = []string{}
	}

	writeJSON(w, http.StatusOK, historyResponse{Items: h, Total: len(h)})
}

// IndexEntry handles POST /api/v1/entries/{id}/index.
func (s *Server) IndexEntry(w http.ResponseWriter, r *http.Request) {
	ran, err := s.indexer.IndexEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !ran {
		writeError(w, http.StatusConflict, codeIndexingInProgress, "an indexing pass is already running")
		return
	}

	writeJSON(w, http.StatusOK, indexResponse{Started: true, Indexed: 1})
}

// IndexAllEntries handles POST /api/v1/index.
func (s *Server) IndexAllEntries(w http.ResponseWriter, r *http.Request) {
	indexed, ran, err := s.indexer.IndexAll(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !ran {
		writeError(w, http.StatusConflict, codeIndexingInProgress, "an indexing pass is already running")
		return
	}

	writeJSON(w, http.StatusOK, indexResponse{Started: true, Indexed: indexed})
}

// GetStats handles GET /api/v1/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsToDTO(s.knowledge.Stats()))
}

// ExportEntries handles GET /api/v1/export. The format query parameter
// defaults to json; any other value yields the plain-text dump.
func (s *Server) ExportEntries(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = knowledgeuc.ExportJSON
	}

	data, err := s.knowledge.Export(format)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == knowledgeuc.ExportJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportFile handles POST /api/v1/import.
func (s *Server) ImportFile(w http.ResponseWriter, r *http.Request) {
	var req importEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.FilePath == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "filePath is required")
		return
	}

	typ, err := entry.ParseType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	e, err := s.importer.ImportFile(r.Context(), req.FilePath, typ, req.Category, req.Tags)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusBadRequest, codeBadRequest, "import file does not exist")
			return
		}
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/entries/"+e.ID())
	writeJSON(w, http.StatusCreated, entryToDTO(&e))
}

// ClearState handles DELETE /api/v1/state.
func (s *Server) ClearState(w http.ResponseWriter, r *http.Request) {
	s.knowledge.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToDTO(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func patchFromRequest(req patchEntryRequest) (patch.Patch, error) {
	var typ *entry.Type
	if req.Type != nil {
		t, err := entry.ParseType(*req.Type)
		if err != nil {
			return patch.Patch{}, err
		}
		typ = &t
	}

	p, err := patch.New(req.Title, req.Content, req.Source, typ, req.Category, req.Tags, req.Importance)
	if err != nil {
		return patch.Patch{}, err
	}
	return p, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEntryNotFound,
		domain.ErrEntryExists,
		domain.ErrInvalidEntry,
		domain.ErrMalformedImport,
		domain.ErrImportTooLarge,
		domain.ErrUnsupportedImport,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// importSizeHandler handles ErrImportTooLarge with the observed and allowed sizes.
func importSizeHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrImportTooLarge) {
		return false
	}
	var ise *domain.ImportSizeError
	if errors.As(err, &ise) {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{
			"code":    codeImportTooLarge,
			"message": msg,
			"size":    ise.Size,
			"limit":   ise.Limit,
		})
		return true
	}
	writeError(w, http.StatusRequestEntityTooLarge, codeImportTooLarge, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
