package search

import (
	"sort"
	"strings"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain/search/result"
	"github.com/kailas-cloud/memdex/internal/domain/token"
)

// MaxResults caps a single search response.
const MaxResults = 20

// Service answers ranked free-text queries over the inverted index.
type Service struct {
	corpus Corpus
}

// New creates a search service.
func New(c Corpus) *Service {
	return &Service{corpus: c}
}

// Search runs a ranked query and returns at most MaxResults entries.
// The raw query is recorded in history even when it tokenizes to nothing,
// and every returned entry gets its access metadata bumped.
func (s *Service) Search(query string) []result.Result {
	s.corpus.AppendQuery(query)

	terms := token.Tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	// Каждый постинг учитывается один раз, сколько бы термов его ни выбрало.
	scores := make(map[string]int)
	for indexedTerm, postings := range s.corpus.Postings() {
		if !matchesAny(indexedTerm, terms) {
			continue
		}
		for i := range postings {
			scores[postings[i].EntryID()] += postings[i].Relevance()
		}
	}

	type hit struct {
		id    string
		score int
	}
	hits := make([]hit, 0, len(scores))
	for id, score := range scores {
		if score == 0 {
			continue
		}
		hits = append(hits, hit{id: id, score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].id < hits[j].id
	})
	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}

	now := time.Now()
	results := make([]result.Result, 0, len(hits))
	for _, h := range hits {
		touched, err := s.corpus.Touch(h.id, now)
		if err != nil {
			// Запись удалили между выборкой и этим шагом.
			continue
		}
		results = append(results, result.New(touched, h.score))
	}
	return results
}

// History returns recorded queries, oldest first.
func (s *Service) History() []string {
	return s.corpus.History()
}

// matchesAny applies the bidirectional substring rule: an indexed term is
// selected when it contains a query term or a query term contains it.
func matchesAny(indexed string, queryTerms []string) bool {
	for _, q := range queryTerms {
		if strings.Contains(indexed, q) || strings.Contains(q, indexed) {
			return true
		}
	}
	return false
}
