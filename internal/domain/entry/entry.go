package entry

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxContentSize is the maximum entry content size in bytes.
const MaxContentSize = 163840 // 160KB

// Type is the source format of an entry.
type Type string

const (
	// TypeText is plain text content.
	TypeText Type = "text"
	// TypeJSON is structured JSON content.
	TypeJSON Type = "json"
	// TypeHTML is content extracted from an HTML document.
	TypeHTML Type = "html"
	// TypeArchive is an archived resource stored by reference.
	TypeArchive Type = "archive"
	// TypePDF is a PDF resource stored by reference.
	TypePDF Type = "pdf"
)

// IsValid reports whether t is a known entry type.
func (t Type) IsValid() bool {
	switch t {
	case TypeText, TypeJSON, TypeHTML, TypeArchive, TypePDF:
		return true
	}
	return false
}

// ParseType converts a raw string into a Type. Empty input defaults to text.
func ParseType(s string) (Type, error) {
	if s == "" {
		return TypeText, nil
	}
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid entry type: %q", s)
	}
	return t, nil
}

// Draft holds the author-supplied fields of a new entry.
type Draft struct {
	Title      string
	Content    string
	Source     string
	Type       Type
	Category   string
	Tags       []string
	Importance int
}

// Entry is the knowledge entry aggregate (immutable value object).
type Entry struct {
	id           string
	title        string
	content      string
	source       string
	typ          Type
	category     string
	tags         []string
	importance   int
	createdAt    time.Time
	lastAccessed time.Time
	accessCount  int
	indexed      bool
}

// New validates and creates an Entry.
// Title: non-empty. Content: max 160KB. Importance: 0-100. Type: empty defaults to text.
func New(id string, d Draft, now time.Time) (Entry, error) {
	if id == "" {
		return Entry{}, fmt.Errorf("entry ID is required")
	}
	if strings.TrimSpace(d.Title) == "" {
		return Entry{}, fmt.Errorf("title is required")
	}
	if len(d.Content) > MaxContentSize {
		return Entry{}, fmt.Errorf("content too large (max %d bytes)", MaxContentSize)
	}
	typ := d.Type
	if typ == "" {
		typ = TypeText
	}
	if !typ.IsValid() {
		return Entry{}, fmt.Errorf("invalid entry type: %q", string(d.Type))
	}
	if d.Importance < 0 || d.Importance > 100 {
		return Entry{}, fmt.Errorf("importance must be in [0,100], got %d", d.Importance)
	}

	return Entry{
		id:         id,
		title:      strings.TrimSpace(d.Title),
		content:    d.Content,
		source:     d.Source,
		typ:        typ,
		category:   strings.TrimSpace(d.Category),
		tags:       NormalizeTags(d.Tags),
		importance: d.Importance,
		createdAt:  now,
	}, nil
}

// Reconstruct creates an Entry without validation (storage hydration).
func Reconstruct(
	id, title, content, source string, typ Type, category string, tags []string,
	importance int, createdAt, lastAccessed time.Time, accessCount int, indexed bool,
) Entry {
	return Entry{
		id: id, title: title, content: content, source: source, typ: typ,
		category: category, tags: tags, importance: importance,
		createdAt: createdAt, lastAccessed: lastAccessed,
		accessCount: accessCount, indexed: indexed,
	}
}

// ID returns the entry identifier.
func (e *Entry) ID() string { return e.id }

// Title returns the entry title.
func (e *Entry) Title() string { return e.title }

// Content returns the entry text content.
func (e *Entry) Content() string { return e.content }

// Source returns where the entry came from (path, URL, free text).
func (e *Entry) Source() string { return e.source }

// Type returns the entry source format.
func (e *Entry) Type() Type { return e.typ }

// Category returns the entry category.
func (e *Entry) Category() string { return e.category }

// Tags returns the entry tags.
func (e *Entry) Tags() []string { return e.tags }

// Importance returns the author-supplied weight (0-100).
func (e *Entry) Importance() int { return e.importance }

// CreatedAt returns the immutable creation time.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// LastAccessed returns the last time search returned this entry.
func (e *Entry) LastAccessed() time.Time { return e.lastAccessed }

// AccessCount returns how many times search returned this entry.
func (e *Entry) AccessCount() int { return e.accessCount }

// Indexed reports whether at least one indexing pass covered the current content.
func (e *Entry) Indexed() bool { return e.indexed }

// ContentLength returns the content length in runes. Feeds the totalKnowledge aggregate.
func (e *Entry) ContentLength() int { return utf8.RuneCountInString(e.content) }

// HasTag reports whether the entry carries the given tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Touched returns a copy with access metadata updated (search-time side effect).
func (e *Entry) Touched(now time.Time) Entry {
	c := *e
	c.lastAccessed = now
	c.accessCount++
	return c
}

// WithIndexed returns a copy with the indexed flag set.
func (e *Entry) WithIndexed(indexed bool) Entry {
	c := *e
	c.indexed = indexed
	return c
}

// NormalizeTags trims, drops empties and deduplicates preserving first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
