package ingest

import (
	"context"

	"github.com/kailas-cloud/memdex/internal/domain/entry"
)

// Adder stores normalized drafts as knowledge entries.
type Adder interface {
	Add(ctx context.Context, d entry.Draft) (entry.Entry, error)
}
