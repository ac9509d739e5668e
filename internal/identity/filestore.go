package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists each identity map as one JSON file per
// (entity type, scope) pair: a flat object of source id -> destination id.
// The files are deliberately human-readable so an operator can audit a
// migration with a diff tool before trusting it.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed identity map store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create identity map directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file path for one (entity type, scope) map.
func (s *FileStore) Path(entityType, scope string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", entityType, scope))
}

// Load reads a previously persisted map, or returns an empty map if none
// exists.
func (s *FileStore) Load(_ context.Context, entityType, scope string) (*Map, error) {
	m := NewMap(entityType, scope)

	data, err := os.ReadFile(s.Path(entityType, scope))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read identity map %s/%s: %w", entityType, scope, err)
	}

	entries := make(map[string]int64)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse identity map %s/%s: %w", entityType, scope, err)
	}
	m.restore(entries)
	return m, nil
}

// Save durably persists the full map. The write goes to a temp file in the
// same directory followed by a rename, so a crash mid-save leaves either the
// old map or the new one, never a truncated file.
func (s *FileStore) Save(_ context.Context, m *Map) error {
	data, err := json.MarshalIndent(m.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode identity map %s/%s: %w", m.EntityType, m.Scope, err)
	}

	final := s.Path(m.EntityType, m.Scope)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(final)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for identity map: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write identity map %s/%s: %w", m.EntityType, m.Scope, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync identity map %s/%s: %w", m.EntityType, m.Scope, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close identity map temp file: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace identity map %s/%s: %w", m.EntityType, m.Scope, err)
	}
	return nil
}
