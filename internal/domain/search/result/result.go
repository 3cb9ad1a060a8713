package result

import "github.com/kailas-cloud/memdex/internal/domain/entry"

// Result is a single search hit: a returned entry snapshot with its
// aggregate score (summed relevance of every matched posting).
type Result struct {
	entry entry.Entry
	score int
}

// New creates a search result.
func New(e entry.Entry, score int) Result {
	return Result{entry: e, score: score}
}

// Entry returns the entry snapshot as of the search (access metadata updated).
func (r *Result) Entry() entry.Entry { return r.entry }

// Score returns the aggregate relevance score.
func (r *Result) Score() int { return r.score }
