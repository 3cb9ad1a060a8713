package memdex

import (
	"time"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/search/result"
)

// EntryType classifies entry content.
type EntryType string

// Entry type constants.
const (
	TypeText    EntryType = "text"
	TypeJSON    EntryType = "json"
	TypeHTML    EntryType = "html"
	TypeArchive EntryType = "archive"
	TypePDF     EntryType = "pdf"
)

// Entry is a knowledge entry.
type Entry struct {
	ID           string
	Title        string
	Content      string
	Source       string
	Type         EntryType
	Category     string
	Tags         []string
	Importance   int
	CreatedAt    time.Time
	LastAccessed time.Time
	AccessCount  int
	Indexed      bool
}

// Draft holds the fields of a new entry. Title and Content are required;
// Type defaults to text; Importance is a 0-100 weight.
type Draft struct {
	Title      string
	Content    string
	Source     string
	Type       EntryType
	Category   string
	Tags       []string
	Importance int
}

// EntryPatch is a partial entry update.
// Nil fields are unchanged. A non-nil Tags pointer replaces the whole tag set.
type EntryPatch struct {
	Title      *string
	Content    *string
	Source     *string
	Type       *EntryType
	Category   *string
	Tags       *[]string
	Importance *int
}

// SearchHit is a single search result.
type SearchHit struct {
	Entry Entry
	Score int
}

// ImportOptions carries optional metadata for an imported file.
type ImportOptions struct {
	Type     EntryType // empty defaults to text
	Category string
	Tags     []string
}

// Stats summarizes the current corpus.
type Stats struct {
	TotalEntries   int
	IndexedEntries int
	TotalPostings  int
	TotalKnowledge int
	ByCategory     map[string]int
	ByTag          map[string]int
	MeanImportance float64
	FavoriteCount  int
	HistoryLength  int
	LastIndexing   time.Time
}

// IndexReport is the outcome of an indexing request. Started is false when
// another pass was already running and the request was dropped.
type IndexReport struct {
	Started bool
	Indexed int
}

// HealthStatus represents the aggregated engine health.
type HealthStatus struct {
	Status   string            // "ok", "degraded", "error"
	Checks   map[string]string // component → "ok"/"error"
	Indexing bool              // an indexing pass is in flight
}

func fromInternalEntry(e *entry.Entry) Entry {
	return Entry{
		ID:           e.ID(),
		Title:        e.Title(),
		Content:      e.Content(),
		Source:       e.Source(),
		Type:         EntryType(e.Type()),
		Category:     e.Category(),
		Tags:         e.Tags(),
		Importance:   e.Importance(),
		CreatedAt:    e.CreatedAt(),
		LastAccessed: e.LastAccessed(),
		AccessCount:  e.AccessCount(),
		Indexed:      e.Indexed(),
	}
}

func fromInternalEntries(entries []entry.Entry) []Entry {
	out := make([]Entry, len(entries))
	for i := range entries {
		out[i] = fromInternalEntry(&entries[i])
	}
	return out
}

func fromInternalHits(results []result.Result) []SearchHit {
	out := make([]SearchHit, len(results))
	for i := range results {
		e := results[i].Entry()
		out[i] = SearchHit{Entry: fromInternalEntry(&e), Score: results[i].Score()}
	}
	return out
}

func fromInternalStats(s domain.Stats) Stats {
	return Stats{
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

func toInternalDraft(d Draft) entry.Draft {
	return entry.Draft{
		Title:      d.Title,
		Content:    d.Content,
		Source:     d.Source,
		Type:       entry.Type(d.Type),
		Category:   d.Category,
		Tags:       d.Tags,
		Importance: d.Importance,
	}
}
