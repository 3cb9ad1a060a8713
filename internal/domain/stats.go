package domain

import "time"

// Stats is a point-in-time aggregate over the knowledge corpus.
// Every number is recomputed from the live collections on request;
// nothing here is cached.
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
