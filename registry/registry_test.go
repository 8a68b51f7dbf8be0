package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/convostore/core"
	"github.com/hupe1980/convostore/internal/testutil"
	"github.com/hupe1980/convostore/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records how often Save is called and keeps the last snapshot.
type countingStore struct {
	mu       sync.Mutex
	saves    int
	last     core.Snapshot
	saveErr  error
	loadSnap core.Snapshot
	loadErr  error
}

func (s *countingStore) Save(snapshot core.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.last = snapshot.Clone()
	return nil
}

func (s *countingStore) Load() (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.loadSnap, nil
}

func (s *countingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Interface compliance (compile-time assertion)
var _ core.SnapshotStore = (*countingStore)(nil)

func TestRegistry_Scenario(t *testing.T) {
	store := &countingStore{}
	r := New(store)

	conv, n, err := r.CreateConversation()
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, core.NotificationConversationCreated, n.Kind)
	assert.Equal(t, core.DefaultTitle, n.Title)

	title, err := r.GetTitle(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultTitle, title)

	n, err = r.AddUserMessage(conv.ID, "hello")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, core.AuthorUser, n.Author)
	assert.Equal(t, "hello", n.Content)

	msgs, err := r.GetMessages(conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, core.Message{Author: core.AuthorUser, Content: "hello"}, msgs[0])

	n, err = r.SetTitle(conv.ID, "Greeting")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "Greeting", n.Title)

	title, err = r.GetTitle(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Greeting", title)

	// Setting the same title again is a no-op: no event, no save, no notification.
	savesBefore := store.saveCount()
	n, err = r.SetTitle(conv.ID, "  Greeting  ")
	require.NoError(t, err)
	assert.Nil(t, n)
	assert.Equal(t, savesBefore, store.saveCount())

	got, err := r.Get(conv.ID)
	require.NoError(t, err)
	titleEvents := 0
	for _, rec := range got.History {
		if _, ok := rec.Event.(core.TitleChanged); ok {
			titleEvents++
		}
	}
	assert.Equal(t, 1, titleEvents)
}

func TestRegistry_NotFound(t *testing.T) {
	r := New(&countingStore{})

	unknown := core.NewConversationID()

	_, err := r.Get(unknown)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = r.GetTitle(unknown)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = r.GetMessages(unknown)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = r.SetTitle(unknown, "x")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = r.AddUserMessage(unknown, "x")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = r.AddAssistantReply(context.Background(), unknown, model.NewMockCompleter())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRegistry_AddAssistantReply(t *testing.T) {
	store := &countingStore{}
	r := New(store)

	conv, _, err := r.CreateConversation()
	require.NoError(t, err)

	_, err = r.AddUserMessage(conv.ID, "hello")
	require.NoError(t, err)

	completer := model.NewMockCompleter()
	completer.AddResponse("hello", "hi there")

	n, err := r.AddAssistantReply(context.Background(), conv.ID, completer)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, core.AuthorAssistant, n.Author)
	assert.Equal(t, "hi there", n.Content)

	msgs, err := r.GetMessages(conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, core.Message{Author: core.AuthorAssistant, Content: "hi there"}, msgs[1])
}

func TestRegistry_AddAssistantReply_EmptyConversation(t *testing.T) {
	store := &countingStore{}
	r := New(store)

	conv, _, err := r.CreateConversation()
	require.NoError(t, err)

	savesBefore := store.saveCount()
	_, err = r.AddAssistantReply(context.Background(), conv.ID, model.NewMockCompleter())
	assert.ErrorIs(t, err, core.ErrEmptyConversation)
	assert.Equal(t, savesBefore, store.saveCount())

	got, err := r.Get(conv.ID)
	require.NoError(t, err)
	assert.Empty(t, got.History)
}

func TestRegistry_AddAssistantReply_CompleterFailure(t *testing.T) {
	store := &countingStore{}
	r := New(store)

	conv, _, err := r.CreateConversation()
	require.NoError(t, err)
	_, err = r.AddUserMessage(conv.ID, "hello")
	require.NoError(t, err)

	before, err := r.Get(conv.ID)
	require.NoError(t, err)
	savesBefore := store.saveCount()

	completer := model.NewMockCompleter()
	completer.FailWith(fmt.Errorf("backend down"))

	_, err = r.AddAssistantReply(context.Background(), conv.ID, completer)
	assert.ErrorIs(t, err, core.ErrCompletion)

	// Failure must not partially mutate state: same history, nothing persisted.
	after, err := r.Get(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, len(before.History), len(after.History))
	assert.Equal(t, savesBefore, store.saveCount())
}

func TestRegistry_SaveFailureLeavesMemoryAhead(t *testing.T) {
	store := &countingStore{}
	r := New(store)

	conv, _, err := r.CreateConversation()
	require.NoError(t, err)

	store.saveErr = errors.New("disk full")

	_, err = r.AddUserMessage(conv.ID, "hello")
	require.Error(t, err)

	// The mutation is reported as failed but stays applied in memory.
	msgs, err := r.GetMessages(conv.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	// The next successful save carries the full state forward.
	store.saveErr = nil
	_, err = r.AddUserMessage(conv.ID, "again")
	require.NoError(t, err)
	assert.Len(t, store.last[conv.ID].Messages(), 2)
}

func TestRegistry_Load(t *testing.T) {
	seeded := testutil.NewConversationBuilder().UserMessage("restored").Build()

	store := &countingStore{loadSnap: core.Snapshot{seeded.ID: seeded}}
	r := New(store)
	require.NoError(t, r.Load())

	msgs, err := r.GetMessages(seeded.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "restored", msgs[0].Content)
}

func TestRegistry_ListTitles(t *testing.T) {
	r := New(&countingStore{})

	first, _, err := r.CreateConversation()
	require.NoError(t, err)
	second, _, err := r.CreateConversation()
	require.NoError(t, err)

	_, err = r.SetTitle(second.ID, "Named")
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())

	titles := r.ListTitles()
	require.Len(t, titles, 2)
	assert.Equal(t, core.DefaultTitle, titles[first.ID])
	assert.Equal(t, "Named", titles[second.ID])
}

func TestRegistry_ConcurrentReaders(t *testing.T) {
	store := &countingStore{}
	r := New(store)

	conv, _, err := r.CreateConversation()
	require.NoError(t, err)
	_, err = r.AddUserMessage(conv.ID, "hello")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.GetMessages(conv.ID); err != nil {
				t.Errorf("read failed: %v", err)
			}
			r.ListTitles()
		}()
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := r.AddUserMessage(conv.ID, fmt.Sprintf("msg-%d", i)); err != nil {
				t.Errorf("write failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	msgs, err := r.GetMessages(conv.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 9)
}
