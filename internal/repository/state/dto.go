package state

import (
	"time"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/posting"
	"github.com/kailas-cloud/memdex/internal/repository/corpus"
)

// stateDoc is the persisted JSON shape of the whole corpus.
// totalKnowledge and indexedEntries are derived from entries at save time;
// they are carried for external readers but ignored on load.
type stateDoc struct {
	Entries         []entryDoc `json:"entries"`
	Indices         []indexDoc `json:"indices"`
	TotalKnowledge  int        `json:"totalKnowledge"`
	IndexedEntries  int        `json:"indexedEntries"`
	LastIndexing    time.Time  `json:"lastIndexing,omitzero"`
	SearchHistory   []string   `json:"searchHistory"`
	FavoriteEntries []string   `json:"favoriteEntries"`
}

type entryDoc struct {
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

type indexDoc struct {
	EntryID   string `json:"entryId"`
	Term      string `json:"term"`
	Frequency int    `json:"frequency"`
	Positions []int  `json:"positions"`
	Relevance int    `json:"relevance"`
}

func toDoc(s corpus.Snapshot) stateDoc {
	entries := make([]entryDoc, len(s.Entries))
	totalKnowledge := 0
	indexed := 0
	for i := range s.Entries {
		e := &s.Entries[i]
		entries[i] = entryDoc{
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
		totalKnowledge += e.ContentLength()
		if e.Indexed() {
			indexed++
		}
	}

	indices := make([]indexDoc, len(s.Postings))
	for i := range s.Postings {
		p := &s.Postings[i]
		indices[i] = indexDoc{
			EntryID:   p.EntryID(),
			Term:      p.Term(),
			Frequency: p.Frequency(),
			Positions: p.Positions(),
			Relevance: p.Relevance(),
		}
	}

	return stateDoc{
		Entries:         entries,
		Indices:         indices,
		TotalKnowledge:  totalKnowledge,
		IndexedEntries:  indexed,
		LastIndexing:    s.LastIndexing,
		SearchHistory:   s.History,
		FavoriteEntries: s.Favorites,
	}
}

func fromDoc(doc stateDoc) corpus.Snapshot {
	entries := make([]entry.Entry, len(doc.Entries))
	for i, d := range doc.Entries {
		entries[i] = entry.Reconstruct(
			d.ID, d.Title, d.Content, d.Source, entry.Type(d.Type), d.Category, d.Tags,
			d.Importance, d.Timestamp, d.LastAccessed, d.AccessCount, d.Indexed,
		)
	}

	postings := make([]posting.Posting, len(doc.Indices))
	for i, d := range doc.Indices {
		postings[i] = posting.Reconstruct(d.EntryID, d.Term, d.Frequency, d.Positions, d.Relevance)
	}

	return corpus.Snapshot{
		Entries:      entries,
		Postings:     postings,
		LastIndexing: doc.LastIndexing,
		History:      doc.SearchHistory,
		Favorites:    doc.FavoriteEntries,
	}
}
