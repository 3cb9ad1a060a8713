package search

import (
	"time"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/posting"
)

// Corpus is the index and entry state queries run against. Search only
// reads the index; the one mutation it performs is access tracking.
type Corpus interface {
	Postings() map[string][]posting.Posting
	Touch(id string, now time.Time) (entry.Entry, error)
	AppendQuery(q string)
	History() []string
}
