package memdex

import "github.com/kailas-cloud/memdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEntryNotFound     = domain.ErrEntryNotFound
	ErrEntryExists       = domain.ErrEntryExists
	ErrInvalidEntry      = domain.ErrInvalidEntry
	ErrStateNotFound     = domain.ErrStateNotFound
	ErrMalformedImport   = domain.ErrMalformedImport
	ErrUnsupportedImport = domain.ErrUnsupportedImport
	ErrImportTooLarge    = domain.ErrImportTooLarge
)
