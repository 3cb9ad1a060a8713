package corpus

import (
	"github.com/kailas-cloud/memdex/internal/domain/posting"
)

// index is the inverted index: term → entryID → posting.
// At most one posting exists per (entryID, term) pair.
type index map[string]map[string]posting.Posting

func (ix index) put(p posting.Posting) {
	byEntry, ok := ix[p.Term()]
	if !ok {
		byEntry = make(map[string]posting.Posting)
		ix[p.Term()] = byEntry
	}
	byEntry[p.EntryID()] = p
}

func (ix index) removeEntry(entryID string) {
	for term, byEntry := range ix {
		if _, ok := byEntry[entryID]; ok {
			delete(byEntry, entryID)
			if len(byEntry) == 0 {
				delete(ix, term)
			}
		}
	}
}

// Posting returns the posting for (term, entryID) if one exists.
func (r *Repo) Posting(term, entryID string) (posting.Posting, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[term][entryID]
	return p, ok
}

// PutPosting inserts or replaces the posting at its (entryID, term) slot.
func (r *Repo) PutPosting(p posting.Posting) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index.put(p)
}

// TermTotal returns the summed frequency of a term across all entries.
func (r *Repo) TermTotal(term string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, p := range r.index[term] {
		total += p.Frequency()
	}
	return total
}

// Postings returns a copy of the whole index grouped by term.
func (r *Repo) Postings() map[string][]posting.Posting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]posting.Posting, len(r.index))
	for term, byEntry := range r.index {
		list := make([]posting.Posting, 0, len(byEntry))
		for _, p := range byEntry {
			list = append(list, p)
		}
		out[term] = list
	}
	return out
}

// PostingCount returns the number of postings in the index.
func (r *Repo) PostingCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, byEntry := range r.index {
		n += len(byEntry)
	}
	return n
}
