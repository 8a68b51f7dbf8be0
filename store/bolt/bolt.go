// Package bolt persists the registry snapshot in a BoltDB file, one
// JSON-encoded conversation per key inside a single bucket. Every save
// recreates the bucket inside one transaction so the on-disk state always
// reflects exactly one whole snapshot.
package bolt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/convostore/core"
	bbolt "go.etcd.io/bbolt"
)

var bucketConversations = []byte("conversations")

// Store is a BoltDB backed SnapshotStore. The database file is opened per
// operation and closed again, keeping the file shareable between short-lived
// processes.
type Store struct {
	path string
}

// New creates a store persisting to the BoltDB file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the configured database location.
func (s *Store) Path() string { return s.path }

// Save implements core.SnapshotStore.
func (s *Store) Save(snapshot core.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", core.ErrSnapshotSave, err)
	}

	db, err := bbolt.Open(s.path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrSnapshotSave, err)
	}
	defer func() { _ = db.Close() }()

	err = db.Update(func(tx *bbolt.Tx) error {
		// Recreate the bucket to reflect the given snapshot exactly.
		if tx.Bucket(bucketConversations) != nil {
			if err := tx.DeleteBucket(bucketConversations); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket(bucketConversations)
		if err != nil {
			return err
		}
		for id, conv := range snapshot {
			enc, err := json.Marshal(conv)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(id), enc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrSnapshotSave, err)
	}

	return nil
}

// Load implements core.SnapshotStore.
func (s *Store) Load() (core.Snapshot, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return core.Snapshot{}, nil
	}

	db, err := bbolt.Open(s.path, 0o600, &bbolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSnapshotLoad, err)
	}
	defer func() { _ = db.Close() }()

	snapshot := core.Snapshot{}
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var conv core.Conversation
			if err := json.Unmarshal(v, &conv); err != nil {
				return fmt.Errorf("conversation %s: %v", k, err)
			}
			snapshot[core.ConversationID(k)] = &conv
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSnapshotLoad, err)
	}

	return snapshot, nil
}
