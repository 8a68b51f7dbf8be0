package core

// Snapshot is the full registry state: every conversation keyed by its id.
// Invariant: for every entry the map key equals the value's ID.
type Snapshot map[ConversationID]*Conversation

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	clone := make(Snapshot, len(s))
	for id, conv := range s {
		clone[id] = conv.Clone()
	}
	return clone
}

// SnapshotStore persists the registry as one unit. Save always rewrites the
// complete snapshot, never individual conversations, so a crash mid-write
// risks only the most recent snapshot and never a mix of old and new state.
// Implementations wrap failures in ErrSnapshotSave / ErrSnapshotLoad.
type SnapshotStore interface {
	Save(snapshot Snapshot) error
	Load() (Snapshot, error)
}
