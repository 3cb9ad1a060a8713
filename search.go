package memdex

import "time"

// SearchService queries the in-memory inverted index.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Query searches indexed entries. Results are sorted by aggregate score,
// capped at 20, and every returned entry has its access metadata touched.
// The raw query is appended to the search history even when nothing matches.
func (s *SearchService) Query(query string) []SearchHit {
	start := time.Now()
	defer func() { s.obs.observe("search.query", start, nil) }()

	return fromInternalHits(s.svc.Search(query))
}

// History returns recent queries, oldest first. Bounded to the last 50.
func (s *SearchService) History() []string {
	return s.svc.History()
}
