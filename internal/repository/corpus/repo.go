// Package corpus owns the authoritative in-memory entry and posting
// collections. Every mutation goes through one lock, so aggregate counts
// derived from the collections can never drift from the data itself.
package corpus

import (
	"sort"
	"sync"
	"time"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
)

// maxHistory bounds the search history ring: oldest queries are evicted first.
const maxHistory = 50

// Repo implements the entry, index, history and favorites state behind
// the knowledge, indexer and search services.
type Repo struct {
	mu           sync.RWMutex
	entries      map[string]entry.Entry
	index        index
	lastIndexing time.Time
	history      []string
	favorites    []string
}

// New creates an empty corpus.
func New() *Repo {
	return &Repo{
		entries: make(map[string]entry.Entry),
		index:   make(index),
	}
}

// Insert adds a new entry. Returns domain.ErrEntryExists on duplicate id.
func (r *Repo) Insert(e entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.ID()]; ok {
		return domain.ErrEntryExists
	}
	r.entries[e.ID()] = e
	return nil
}

// Get retrieves an entry by id.
func (r *Repo) Get(id string) (entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return entry.Entry{}, domain.ErrEntryNotFound
	}
	return e, nil
}

// Replace overwrites an existing entry.
func (r *Repo) Replace(e entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.ID()]; !ok {
		return domain.ErrEntryNotFound
	}
	r.entries[e.ID()] = e
	return nil
}

// Remove deletes an entry together with every posting that references it
// and its favorites mark.
func (r *Repo) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(r.entries, id)
	r.index.removeEntry(id)
	r.favorites = removeString(r.favorites, id)
	return nil
}

// All returns every entry ordered by creation time, then id.
func (r *Repo) All() []entry.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sortEntries(out)
	return out
}

// Pending returns entries not yet indexed, ordered by creation time, then id.
func (r *Repo) Pending() []entry.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0)
	for _, e := range r.entries {
		if !e.Indexed() {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

// Touch records a successful retrieval: bumps accessCount and lastAccessed.
func (r *Repo) Touch(id string, now time.Time) (entry.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return entry.Entry{}, domain.ErrEntryNotFound
	}
	touched := e.Touched(now)
	r.entries[id] = touched
	return touched, nil
}

// MarkIndexed flags an entry as covered by a completed indexing pass.
func (r *Repo) MarkIndexed(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	r.entries[id] = e.WithIndexed(true)
	return nil
}

// EntryCount returns the number of stored entries.
func (r *Repo) EntryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// IndexedCount returns the number of entries with a completed indexing pass.
func (r *Repo) IndexedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, e := range r.entries {
		if e.Indexed() {
			n++
		}
	}
	return n
}

// TotalContentLength returns the summed content length of all entries,
// in runes.
func (r *Repo) TotalContentLength() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, e := range r.entries {
		total += e.ContentLength()
	}
	return total
}

// LastIndexing returns the timestamp of the most recent indexing pass,
// zero if none ran yet.
func (r *Repo) LastIndexing() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastIndexing
}

// SetLastIndexing records the timestamp of a completed indexing pass.
func (r *Repo) SetLastIndexing(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastIndexing = t
}

// AppendQuery records a raw search query in the bounded history ring.
func (r *Repo) AppendQuery(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, q)
	if len(r.history) > maxHistory {
		r.history = r.history[len(r.history)-maxHistory:]
	}
}

// History returns a copy of the search history, oldest first.
func (r *Repo) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneStrings(r.history)
}

// Favorite marks an entry as favorite. Idempotent.
func (r *Repo) Favorite(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	for _, fav := range r.favorites {
		if fav == id {
			return nil
		}
	}
	r.favorites = append(r.favorites, id)
	return nil
}

// Unfavorite removes the favorite mark. Removing an unmarked entry is a no-op.
func (r *Repo) Unfavorite(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	r.favorites = removeString(r.favorites, id)
	return nil
}

// Favorites returns favorite entries in the order they were marked.
func (r *Repo) Favorites() []entry.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0, len(r.favorites))
	for _, id := range r.favorites {
		if e, ok := r.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

func sortEntries(list []entry.Entry) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt().Equal(list[j].CreatedAt()) {
			return list[i].CreatedAt().Before(list[j].CreatedAt())
		}
		return list[i].ID() < list[j].ID()
	})
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func removeString(in []string, s string) []string {
	out := in[:0]
	for _, v := range in {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
