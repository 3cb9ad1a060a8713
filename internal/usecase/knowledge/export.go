package knowledge

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain"
)

// ExportJSON selects the structured JSON export. Any other format value
// yields the plain-text rendering.
const ExportJSON = "json"

// textDelimiter separates entries in the plain-text export.
const textDelimiter = "---"

// exportDoc is the JSON export shape: the full corpus plus its stats.
type exportDoc struct {
	Entries []exportEntry `json:"entries"`
	Indices []exportIndex `json:"indices"`
	Stats   exportStats   `json:"stats"`
}

type exportEntry struct {
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

type exportIndex struct {
	EntryID   string `json:"entryId"`
	Term      string `json:"term"`
	Frequency int    `json:"frequency"`
	Positions []int  `json:"positions"`
	Relevance int    `json:"relevance"`
}

type exportStats struct {
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

// Export renders the corpus in the requested format. "json" produces the
// structured dump, anything else the plain-text one.
func (s *Service) Export(format string) ([]byte, error) {
	if format == ExportJSON {
		return s.exportJSON()
	}
	return s.exportText(), nil
}

func (s *Service) exportJSON() ([]byte, error) {
	snap := s.corpus.Snapshot()

	entries := make([]exportEntry, len(snap.Entries))
	for i := range snap.Entries {
		e := &snap.Entries[i]
		entries[i] = exportEntry{
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

	indices := make([]exportIndex, len(snap.Postings))
	for i := range snap.Postings {
		p := &snap.Postings[i]
		indices[i] = exportIndex{
			EntryID:   p.EntryID(),
			Term:      p.Term(),
			Frequency: p.Frequency(),
			Positions: p.Positions(),
			Relevance: p.Relevance(),
		}
	}

	doc := exportDoc{Entries: entries, Indices: indices, Stats: statsDoc(s.Stats())}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// exportText renders title and content per entry, delimiter line between
// entries. Snapshot ordering makes the output deterministic.
func (s *Service) exportText() []byte {
	snap := s.corpus.Snapshot()

	var b strings.Builder
	for i := range snap.Entries {
		e := &snap.Entries[i]
		if i > 0 {
			b.WriteString(textDelimiter + "\n")
		}
		b.WriteString(e.Title() + "\n")
		b.WriteString(e.Content() + "\n")
	}
	return []byte(b.String())
}

func statsDoc(st domain.Stats) exportStats {
	return exportStats{
		TotalEntries:   st.TotalEntries,
		IndexedEntries: st.IndexedEntries,
		TotalPostings:  st.TotalPostings,
		TotalKnowledge: st.TotalKnowledge,
		ByCategory:     st.ByCategory,
		ByTag:          st.ByTag,
		MeanImportance: st.MeanImportance,
		FavoriteCount:  st.FavoriteCount,
		HistoryLength:  st.HistoryLength,
		LastIndexing:   st.LastIndexing,
	}
}
