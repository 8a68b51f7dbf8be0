// Package registry implements the conversation registry: a single shared
// map of conversation aggregates guarded by a reader/writer lock and
// persisted as one snapshot after every mutation.
//
// Locking discipline: read operations take shared access and may proceed in
// parallel; mutating operations take exclusive access, persist the full
// snapshot through the configured store before the lock is released, and
// return a notification for the caller to emit after the lock is dropped.
// The registry never owns the notification channel so it stays testable
// without a UI.
package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/convostore/core"
	"github.com/hupe1980/convostore/logging"
	"github.com/hupe1980/convostore/model"
)

// Options configures the registry.
type Options struct {
	// Logger receives structured diagnostics (defaults to NoOpLogger).
	Logger logging.Logger
}

// Registry owns the id -> conversation map. It is safe for concurrent
// access: any number of readers, one writer at a time, registry-wide.
type Registry struct {
	mu            sync.RWMutex
	conversations core.Snapshot
	store         core.SnapshotStore
	logger        logging.Logger
}

// New constructs an empty registry persisting through store.
func New(store core.SnapshotStore, optFns ...func(o *Options)) *Registry {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{conversations: core.Snapshot{}, store: store, logger: opts.Logger}
}

// Load replaces the in-memory map with the stored snapshot. Intended for
// startup, before the registry is shared.
func (r *Registry) Load() error {
	snapshot, err := r.store.Load()
	if err != nil {
		return err
	}
	if snapshot == nil {
		snapshot = core.Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.conversations = snapshot

	r.logger.Info("registry loaded", "conversations", len(snapshot))

	return nil
}

// Len returns the number of conversations currently held.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conversations)
}

// ListTitles returns a point-in-time view of every conversation's derived
// title keyed by id.
func (r *Registry) ListTitles() map[core.ConversationID]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	titles := make(map[core.ConversationID]string, len(r.conversations))
	for id, conv := range r.conversations {
		titles[id] = conv.Title()
	}
	return titles
}

// Get returns a clone of the conversation so callers can never mutate
// registry state from outside the lock.
func (r *Registry) Get(id core.ConversationID) (*core.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return conv.Clone(), nil
}

// GetTitle returns the derived title of one conversation.
func (r *Registry) GetTitle(id core.ConversationID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.conversations[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return conv.Title(), nil
}

// GetMessages returns the ordered message projection of one conversation.
func (r *Registry) GetMessages(id core.ConversationID) ([]core.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return conv.Messages(), nil
}

// CreateConversation constructs an empty conversation, inserts it and
// persists the snapshot. The returned notification must be emitted by the
// caller after the lock has been released.
func (r *Registry) CreateConversation() (*core.Conversation, *core.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv := core.NewConversation()
	r.conversations[conv.ID] = conv

	if err := r.saveLocked(); err != nil {
		return nil, nil, err
	}

	n := core.NewConversationCreatedNotification(conv.ID, conv.Title())
	return conv.Clone(), &n, nil
}

// SetTitle trims newTitle and appends a TitleChanged event. Setting the
// current title again is a no-op reported as success: no event, no persist,
// no notification.
func (r *Registry) SetTitle(id core.ConversationID, newTitle string) (*core.Notification, error) {
	trimmed := strings.TrimSpace(newTitle)

	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	if conv.Title() == trimmed {
		return nil, nil
	}

	conv.AddEvent(core.TitleChanged{NewTitle: trimmed})

	if err := r.saveLocked(); err != nil {
		return nil, err
	}

	n := core.NewTitleChangedNotification(id, trimmed)
	return &n, nil
}

// AddUserMessage appends a user message unconditionally (identical content is
// not deduplicated) and persists the snapshot.
func (r *Registry) AddUserMessage(id core.ConversationID, content string) (*core.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	conv.AddEvent(core.MessageAdded{Author: core.AuthorUser, Content: content})

	if err := r.saveLocked(); err != nil {
		return nil, err
	}

	n := core.NewMessageAddedNotification(id, core.AuthorUser, content)
	return &n, nil
}

// AddAssistantReply prompts the completer with the conversation's newest
// message plus the prior message context and appends the reply. The completer
// runs while the exclusive lock is held, blocking all other operations for
// its duration; on completer failure nothing is appended and nothing is
// persisted.
func (r *Registry) AddAssistantReply(ctx context.Context, id core.ConversationID, completer model.Completer) (*core.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	prior, prompt, err := conv.PromptContext()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := completer.Complete(ctx, model.Request{Context: prior, Prompt: prompt})
	if err != nil {
		r.logger.Error("completion failed", "conversation_id", id.String(), "model", completer.Info().Name, "duration", time.Since(start), "error", err)
		return nil, fmt.Errorf("%w: %v", core.ErrCompletion, err)
	}
	r.logger.Debug("completion succeeded", "conversation_id", id.String(), "model", completer.Info().Name, "duration", time.Since(start))

	conv.AddEvent(core.MessageAdded{Author: core.AuthorAssistant, Content: resp.Content})

	if err := r.saveLocked(); err != nil {
		return nil, err
	}

	n := core.NewMessageAddedNotification(id, core.AuthorAssistant, resp.Content)
	return &n, nil
}

// saveLocked persists the full snapshot; the caller must hold the write
// lock. On failure the in-memory state is left ahead of disk; the next
// successful save reconciles it.
func (r *Registry) saveLocked() error {
	start := time.Now()
	if err := r.store.Save(r.conversations); err != nil {
		r.logger.Error("snapshot save failed; in-memory state is ahead of disk", "conversations", len(r.conversations), "error", err)
		return err
	}
	r.logger.Debug("snapshot saved", "conversations", len(r.conversations), "duration", time.Since(start))
	return nil
}
