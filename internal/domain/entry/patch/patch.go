package patch

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
)

// Patch is a partial entry update.
// Nil fields are unchanged. A non-nil Tags pointer replaces the whole tag set.
type Patch struct {
	title      *string
	content    *string
	source     *string
	typ        *entry.Type
	category   *string
	tags       *[]string
	importance *int
}

// New validates and creates a Patch. At least one field must be provided.
func New(
	title, content, source *string, typ *entry.Type,
	category *string, tags *[]string, importance *int,
) (Patch, error) {
	if title == nil && content == nil && source == nil && typ == nil &&
		category == nil && tags == nil && importance == nil {
		return Patch{}, fmt.Errorf("at least one field must be provided")
	}
	if title != nil && strings.TrimSpace(*title) == "" {
		return Patch{}, fmt.Errorf("title cannot be blank")
	}
	if content != nil && len(*content) > entry.MaxContentSize {
		return Patch{}, fmt.Errorf("content too large (max %d bytes)", entry.MaxContentSize)
	}
	if typ != nil && !typ.IsValid() {
		return Patch{}, fmt.Errorf("invalid entry type: %q", string(*typ))
	}
	if importance != nil && (*importance < 0 || *importance > 100) {
		return Patch{}, fmt.Errorf("importance must be in [0,100], got %d", *importance)
	}
	return Patch{
		title: title, content: content, source: source, typ: typ,
		category: category, tags: tags, importance: importance,
	}, nil
}

// HasContent reports whether the patch includes a content change.
func (p Patch) HasContent() bool { return p.content != nil }

// Apply merges the patch into e and reports whether the content actually changed.
// Access metadata, creation time and the indexed flag are never patched here.
func (p Patch) Apply(e entry.Entry) (entry.Entry, bool) {
	title := e.Title()
	if p.title != nil {
		title = strings.TrimSpace(*p.title)
	}
	content := e.Content()
	if p.content != nil {
		content = *p.content
	}
	source := e.Source()
	if p.source != nil {
		source = *p.source
	}
	typ := e.Type()
	if p.typ != nil {
		typ = *p.typ
	}
	category := e.Category()
	if p.category != nil {
		category = strings.TrimSpace(*p.category)
	}
	tags := e.Tags()
	if p.tags != nil {
		tags = entry.NormalizeTags(*p.tags)
	}
	importance := e.Importance()
	if p.importance != nil {
		importance = *p.importance
	}

	contentChanged := content != e.Content()
	merged := entry.Reconstruct(
		e.ID(), title, content, source, typ, category, tags, importance,
		e.CreatedAt(), e.LastAccessed(), e.AccessCount(), e.Indexed(),
	)
	return merged, contentChanged
}
