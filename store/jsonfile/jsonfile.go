// Package jsonfile persists the registry snapshot as a single JSON file.
// Every save rewrites the complete snapshot: the bytes are written to a
// temporary file in the destination directory and renamed over the target,
// so a crash mid-write never leaves a mix of old and new state behind.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/convostore/core"
)

// Store is a file backed SnapshotStore. The zero value is not usable;
// construct with New.
type Store struct {
	path string
}

// New creates a store persisting to path. The file is created on first save;
// loading a missing file yields an empty snapshot.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the configured file location.
func (s *Store) Path() string { return s.path }

// Save implements core.SnapshotStore.
func (s *Store) Save(snapshot core.Snapshot) error {
	b, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrSnapshotSave, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", core.ErrSnapshotSave, err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrSnapshotSave, err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", core.ErrSnapshotSave, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", core.ErrSnapshotSave, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", core.ErrSnapshotSave, err)
	}

	return nil
}

// Load implements core.SnapshotStore.
func (s *Store) Load() (core.Snapshot, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.Snapshot{}, nil
		}
		return nil, fmt.Errorf("%w: %v", core.ErrSnapshotLoad, err)
	}

	var snapshot core.Snapshot
	if err := json.Unmarshal(b, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSnapshotLoad, err)
	}
	if snapshot == nil {
		snapshot = core.Snapshot{}
	}

	return snapshot, nil
}
