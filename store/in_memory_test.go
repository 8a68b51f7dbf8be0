package store

import (
	"testing"

	"github.com/hupe1980/convostore/core"
)

// Interface compliance (compile-time assertion)
var _ core.SnapshotStore = (*InMemoryStore)(nil)

func TestInMemoryStore_RoundTrip(t *testing.T) {
	s := NewInMemoryStore()

	conv := core.NewConversation()
	conv.AddEvent(core.MessageAdded{Author: core.AuthorUser, Content: "hi"})

	if err := s.Save(core.Snapshot{conv.ID: conv}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the original after save must not leak into the store.
	conv.AddEvent(core.TitleChanged{NewTitle: "Changed"})

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(got))
	}
	if len(got[conv.ID].History) != 1 {
		t.Errorf("expected stored snapshot to be isolated from later mutation")
	}
}
