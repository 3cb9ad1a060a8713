package corpus

import (
	"sort"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
	"github.com/kailas-cloud/memdex/internal/domain/posting"
)

// Snapshot is a consistent copy of the whole corpus, taken under one lock.
// Entries are ordered by (createdAt, id) and postings by (term, entryId),
// so two snapshots of the same state serialize identically.
type Snapshot struct {
	Entries      []entry.Entry
	Postings     []posting.Posting
	LastIndexing time.Time
	History      []string
	Favorites    []string
}

// Snapshot captures the current state for persistence or export.
func (r *Repo) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]entry.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sortEntries(entries)

	postings := make([]posting.Posting, 0)
	for _, byEntry := range r.index {
		for _, p := range byEntry {
			postings = append(postings, p)
		}
	}
	sort.Slice(postings, func(i, j int) bool {
		if postings[i].Term() != postings[j].Term() {
			return postings[i].Term() < postings[j].Term()
		}
		return postings[i].EntryID() < postings[j].EntryID()
	})

	return Snapshot{
		Entries:      entries,
		Postings:     postings,
		LastIndexing: r.lastIndexing,
		History:      cloneStrings(r.history),
		Favorites:    cloneStrings(r.favorites),
	}
}

// Restore replaces the whole corpus with the snapshot's state.
func (r *Repo) Restore(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]entry.Entry, len(s.Entries))
	for _, e := range s.Entries {
		r.entries[e.ID()] = e
	}

	r.index = make(index)
	for _, p := range s.Postings {
		r.index.put(p)
	}

	r.lastIndexing = s.LastIndexing

	r.history = cloneStrings(s.History)
	if len(r.history) > maxHistory {
		r.history = r.history[len(r.history)-maxHistory:]
	}

	r.favorites = cloneStrings(s.Favorites)
}

// Reset drops every entry, posting, history record and favorite mark.
func (r *Repo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]entry.Entry)
	r.index = make(index)
	r.lastIndexing = time.Time{}
	r.history = nil
	r.favorites = nil
}
