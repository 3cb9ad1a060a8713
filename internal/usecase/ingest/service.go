// Package ingest is the file import boundary: it reads a file, enforces the
// size limit, normalizes the content per declared type and hands the draft
// to the knowledge service. Nothing is applied when validation fails.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/memdex/internal/domain"
	"github.com/kailas-cloud/memdex/internal/domain/entry"
)

// DefaultMaxFileBytes bounds import reads unless configured otherwise.
// Entry content has its own cap; this guard keeps the read itself cheap.
const DefaultMaxFileBytes = 1 << 20 // 1MB

// Service handles file imports.
type Service struct {
	adder    Adder
	maxBytes int64
}

// New creates an ingest service.
func New(adder Adder) *Service {
	return &Service{adder: adder, maxBytes: DefaultMaxFileBytes}
}

// WithMaxFileBytes overrides the import size limit.
func (s *Service) WithMaxFileBytes(n int64) *Service {
	if n > 0 {
		s.maxBytes = n
	}
	return s
}

// ImportFile reads and normalizes a file, then stores it as a new entry.
// category and tags are attached to the draft as supplied. The title comes
// from the file name, or from <title> for HTML documents that carry one.
func (s *Service) ImportFile(
	ctx context.Context, path string, typ entry.Type, category string, tags []string,
) (entry.Entry, error) {
	if typ == entry.TypeArchive || typ == entry.TypePDF {
		return entry.Entry{}, fmt.Errorf("import type %q: %w", typ, domain.ErrUnsupportedImport)
	}

	info, err := os.Stat(path)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("stat import file: %w", err)
	}
	if info.Size() > s.maxBytes {
		return entry.Entry{}, fmt.Errorf(
			"import file %s: %w", path, domain.NewImportSizeError(info.Size(), s.maxBytes),
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("read import file: %w", err)
	}

	d := entry.Draft{
		Title:    titleFromPath(path),
		Source:   path,
		Type:     typ,
		Category: category,
		Tags:     tags,
	}

	switch typ {
	case entry.TypeJSON:
		pretty, err := indentJSON(data)
		if err != nil {
			return entry.Entry{}, fmt.Errorf(
				"import file %s: %w: %w", path, domain.ErrMalformedImport, err,
			)
		}
		d.Content = pretty
	case entry.TypeHTML:
		d.Content = stripHTML(string(data))
		if title := htmlTitle(string(data)); title != "" {
			d.Title = title
		}
	default:
		d.Content = string(data)
	}

	e, err := s.adder.Add(ctx, d)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("store imported entry: %w", err)
	}
	return e, nil
}

// titleFromPath derives a readable title from the file name.
func titleFromPath(path string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}

// indentJSON validates and pretty-prints a JSON payload in one step.
func indentJSON(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
