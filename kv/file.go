package kv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// FileStore keeps one file per key in a directory. Writes go to a temporary
// file that is renamed into place.
type FileStore struct {
	dir string
	ext string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed. ext
// is appended to every file name, e.g. ".json" or ".yaml".
func NewFileStore(dir, ext string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: mkdir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, ext: ext}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+f.ext)
}

// Get reads the file for key.
func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	fn := f.path(key)
	data, err := os.ReadFile(fn)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv: read %s: %w", fn, err)
	}
	return data, nil
}

// Set writes value to the file for key.
func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	fn := f.path(key)
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("kv: create temp: %w", err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("kv: write %s: %w", fn, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("kv: close %s: %w", fn, err)
	}
	if err := os.Rename(tmp.Name(), fn); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("kv: rename %s: %w", fn, err)
	}
	return nil
}

// Delete removes the file for key.
func (f *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Close is a no-op for the file store.
func (f *FileStore) Close() error {
	return nil
}
