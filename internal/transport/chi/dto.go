package chi

import (
	"time"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/memdex/internal/usecase/health"
)

// Wire shapes match the persisted state document: camelCase keys,
// creation time under "timestamp".

type createEntryRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Source     string   `json:"source,omitempty"`
	Type       string   `json:"type,omitempty"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Importance int      `json:"importance,omitempty"`
}

// patchEntryRequest carries pointer fields: absent and null both mean "leave as is".
type patchEntryRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Source     *string   `json:"source"`
	Type       *string   `json:"type"`
	Category   *string   `json:"category"`
	Tags       *[]string `json:"tags"`
	Importance *int      `json:"importance"`
}

type importEntryRequest struct {
	FilePath string   `json:"filePath"`
	Type     string   `json:"type,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type searchEntriesRequest struct {
	Query string `json:"query"`
}

type entryResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Source       string    `json:"source,omitempty"`
	Type         string    `json:"type"`
	Category     string    `json:"category,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Importance   int       `json:"importance"`
	Timestamp    time.Time `json:"timestamp"`
	LastAccessed time.Time `json:"lastAccessed,omitzero"`
	AccessCount  int       `json:"accessCount"`
	Indexed      bool      `json:"indexed"`
}

type entryListResponse struct {
	Items []entryResponse `json:"items"`
	Total int             `json:"total"`
}

type searchResultItem struct {
	Entry entryResponse `json:"entry"`
	Score int           `json:"score"`
}

type searchEntriesResponse struct {
	Query string             `json:"query"`
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
}

type historyResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

type indexResponse struct {
	Started bool `json:"started"`
	Indexed int  `json:"indexed"`
}

type statsResponse struct {
	TotalEntries   int            `json:"totalEntries"`
	IndexedEntries int            `json:"indexedEntries"`
	TotalPostings  int            `json:"totalPostings"`
	TotalKnowledge int            `json:"totalKnowledge"`
	ByCategory     map[string]int `json:"byCategory"`
	ByTag          map[string]int `json:"byTag"`
	MeanImportance float64        `json:"meanImportance"`
	FavoriteCount  int            `json:"favoriteCount"`
	HistoryLength  int            `json:"historyLength"`
	LastIndexing   time.Time      `json:"lastIndexing,omitzero"`
}

type healthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Indexing bool              `json:"indexing"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func entryToDTO(e *entry.Entry) entryResponse {
	return entryResponse{
		ID:           e.ID(),
		Title:        e.Title(),
		Content:      e.Content(),
		Source:       e.Source(),
		Type:         string(e.Type()),
		Category:     e.Category(),
		Tags:         e.Tags(),
		Importance:   e.Importance(),
		Timestamp:    e.CreatedAt(),
		LastAccessed: e.LastAccessed(),
		AccessCount:  e.AccessCount(),
		Indexed:      e.Indexed(),
	}
}

func entryListToDTO(entries []entry.Entry) entryListResponse {
	items := make([]entryResponse, len(entries))
	for i := range entries {
		items[i] = entryToDTO(&entries[i])
	}
	return entryListResponse{Items: items, Total: len(items)}
}

func searchResultToDTO(r *result.Result) searchResultItem {
	e := r.Entry()
	return searchResultItem{Entry: entryToDTO(&e), Score: r.Score()}
}

func statsToDTO(s domain.Stats) statsResponse {
	return statsResponse{
		TotalEntries:   s.TotalEntries,
		IndexedEntries: s.IndexedEntries,
		TotalPostings:  s.TotalPostings,
		TotalKnowledge: s.TotalKnowledge,
		ByCategory:     s.ByCategory,
		ByTag:          s.ByTag,
		MeanImportance: s.MeanImportance,
		FavoriteCount:  s.FavoriteCount,
		HistoryLength:  s.HistoryLength,
		LastIndexing:   s.LastIndexing,
	}
}

func healthToDTO(rep healthuc.Report) healthResponse {
	checks := make(map[string]string, len(rep.Checks))
	for k, v := range rep.Checks {
		checks[k] = string(v)
	}
	return healthResponse{
		Status:   string(rep.Status),
		Checks:   checks,
		Indexing: rep.Indexing,
	}
}
