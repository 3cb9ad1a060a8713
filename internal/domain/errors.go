package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound signals a missing knowledge entry.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrEntryExists signals a duplicate entry id.
	ErrEntryExists = errors.New("entry already exists")
	// ErrInvalidEntry signals entry validation failure.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrStateNotFound signals absent persisted engine state.
	ErrStateNotFound = errors.New("state not found")
	// ErrMalformedImport signals an import payload that failed format validation.
	ErrMalformedImport = errors.New("malformed import payload")
	// ErrUnsupportedImport signals an import type the importer cannot parse.
	ErrUnsupportedImport = errors.New("unsupported import type")

	// ErrImportTooLarge signals an import file above the configured size limit.
	ErrImportTooLarge = errors.New("import file too large")
)

// ImportSizeError wraps ErrImportTooLarge with the observed and allowed sizes.
type ImportSizeError struct {
	Size  int64
	Limit int64
}

func (e *ImportSizeError) Error() string {
	return fmt.Sprintf("%s: %d bytes (max %d)", ErrImportTooLarge.Error(), e.Size, e.Limit)
}

func (e *ImportSizeError) Unwrap() error { return ErrImportTooLarge }

// NewImportSizeError creates an import size error.
func NewImportSizeError(size, limit int64) error {
	return &ImportSizeError{Size: size, Limit: limit}
}
