// Package state persists install records, one JSON file per component.
package state

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/rig/internal/adapters/fs"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.InstallStateStore.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) (*Store, error) {
	cleanPath := filepath.Clean(dir)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreCreateFailed, err.Error()), "path", cleanPath)
	}
	return &Store{dir: cleanPath}, nil
}

// Get retrieves the record for a component ID.
// Returns nil, nil if not found.
func (s *Store) Get(componentID string) (*domain.InstallRecord, error) {
	filename := s.filename(componentID)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", filename)
	}

	var record domain.InstallRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error()), "path", filename)
	}

	return &record, nil
}

// Put stores the record, replacing any previous one atomically.
func (s *Store) Put(record domain.InstallRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error())
	}

	filename := s.filename(record.ComponentID)
	if err := fs.WriteFileAtomic(filename, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", filename)
	}

	return nil
}

func (s *Store) filename(componentID string) string {
	return filepath.Join(s.dir, fs.Key(componentID)+".json")
}
