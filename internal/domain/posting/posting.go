package posting

// Key uniquely identifies a posting. The index holds at most one posting per pair.
type Key struct {
	EntryID string
	Term    string
}

// Posting links a term to one entry with occurrence statistics (immutable value object).
type Posting struct {
	entryID   string
	term      string
	frequency int
	positions []int
	relevance int
}

// New creates a posting for the first occurrence of term at the given token position.
func New(entryID, term string, position, relevance int) Posting {
	return Posting{
		entryID:   entryID,
		term:      term,
		frequency: 1,
		positions: []int{position},
		relevance: relevance,
	}
}

// Reconstruct creates a Posting without validation (storage hydration).
func Reconstruct(entryID, term string, frequency int, positions []int, relevance int) Posting {
	return Posting{
		entryID: entryID, term: term, frequency: frequency,
		positions: positions, relevance: relevance,
	}
}

// Bumped returns a copy with frequency incremented and the position appended.
// Relevance is not recomputed on this path.
func (p *Posting) Bumped(position int) Posting {
	positions := make([]int, len(p.positions), len(p.positions)+1)
	copy(positions, p.positions)
	return Posting{
		entryID:   p.entryID,
		term:      p.term,
		frequency: p.frequency + 1,
		positions: append(positions, position),
		relevance: p.relevance,
	}
}

// EntryID returns the owning entry identifier.
func (p *Posting) EntryID() string { return p.entryID }

// Term returns the indexed term.
func (p *Posting) Term() string { return p.term }

// Frequency returns how many occurrences have been indexed (never reset).
func (p *Posting) Frequency() int { return p.frequency }

// Positions returns the ordered token offsets (append-only).
func (p *Posting) Positions() []int { return p.positions }

// Relevance returns the score assigned when the posting was created.
func (p *Posting) Relevance() int { return p.relevance }

// Key returns the (entryID, term) identity of the posting.
func (p *Posting) Key() Key { return Key{EntryID: p.entryID, Term: p.term} }
