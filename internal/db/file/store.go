// Package file implements db.Store on a local directory, one file per key.
// It backs single-node deployments where no Redis is available.
package file

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kailas-cloud/memdex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds parameters for a file store.
type Config struct {
	Dir string
}

// Store implements db.Store over a directory of flat files.
type Store struct {
	dir string
}

// NewStore creates a file store rooted at cfg.Dir, creating the directory if needed.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}
	return &Store{dir: cfg.Dir}, nil
}

// Ping checks that the store directory is still accessible.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("ping: %s is not a directory", s.dir)
	}
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() {}

// WaitForReady checks the directory once; a local filesystem either
// works immediately or not at all.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("timeout waiting for database: %w", err)
	}
	return s.Ping(ctx)
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value at the given key. Writes go through a temp file
// and rename so readers never observe a partial value.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	path := s.path(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del removes a key. Deleting an absent key is not an error.
func (s *Store) Del(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Exists reports whether a key is present.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	if _, err := os.Stat(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return true, nil
}

// path maps a key to a file name. Keys are percent-escaped so separators
// and other unsafe characters cannot leave the store directory.
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}
