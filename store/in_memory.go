package store

import (
	"sync"

	"github.com/hupe1980/convostore/core"
)

// InMemoryStore is a volatile SnapshotStore keeping the last saved snapshot
// in a process local variable. It is safe for concurrent access and best
// suited for tests or ephemeral demos. Snapshots are cloned on both save and
// load to prevent external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	snapshot core.Snapshot
}

// NewInMemoryStore constructs an empty in-memory snapshot store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{snapshot: core.Snapshot{}}
}

// Save keeps a clone of the provided snapshot.
func (s *InMemoryStore) Save(snapshot core.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot.Clone()
	return nil
}

// Load returns a clone of the last saved snapshot.
func (s *InMemoryStore) Load() (core.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone(), nil
}
