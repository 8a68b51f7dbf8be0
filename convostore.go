// Package convostore provides a high-level façade over the conversation
// registry and its service abstractions (snapshot store, notifier,
// completion backend & logging). Most applications interact with this
// package by:
//  1. Creating a ConvoStore via New() (optionally overriding default services)
//  2. Loading the persisted registry at startup (Load)
//  3. Driving conversations through the operation methods below
//
// Every mutating operation persists the full registry snapshot before the
// internal lock is released and emits the corresponding UI notification
// afterwards, outside the lock. All defaults are safe for local development
// and testing; production deployments typically supply a durable store, a
// real notifier and a structured logger.
package convostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/convostore/core"
	"github.com/hupe1980/convostore/logging"
	"github.com/hupe1980/convostore/model"
	"github.com/hupe1980/convostore/notify"
	"github.com/hupe1980/convostore/registry"
	"github.com/hupe1980/convostore/store"
)

// Options configures the ConvoStore instance.
type Options struct {
	// Store persists the registry snapshot (defaults to an in-memory store).
	Store core.SnapshotStore

	// Notifier receives UI notifications after successful persistence
	// (defaults to a no-op notifier).
	Notifier core.Notifier

	// Completer produces assistant replies. Required only for
	// AddAssistantReply; all other operations work without one.
	Completer model.Completer

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ConvoStore is the high-level façade aggregating the registry and services.
type ConvoStore struct {
	registry  *registry.Registry
	notifier  core.Notifier
	completer model.Completer
	logger    logging.Logger
}

// New creates a new ConvoStore instance with optional overrides. Any unset
// service is initialized with a safe default.
func New(optFns ...func(o *Options)) *ConvoStore {
	opts := Options{
		Notifier: notify.NoOp{},
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Store == nil {
		opts.Store = store.NewInMemoryStore()
	}

	r := registry.New(opts.Store, func(o *registry.Options) {
		o.Logger = opts.Logger
	})

	return &ConvoStore{
		registry:  r,
		notifier:  opts.Notifier,
		completer: opts.Completer,
		logger:    opts.Logger,
	}
}

// Load restores the registry from the configured store. Call once at
// startup, before the store is shared.
func (s *ConvoStore) Load() error { return s.registry.Load() }

// ListTitles returns a point-in-time view of every conversation's title.
func (s *ConvoStore) ListTitles() map[core.ConversationID]string {
	return s.registry.ListTitles()
}

// GetConversation returns the full conversation for a raw id string.
func (s *ConvoStore) GetConversation(rawID string) (*core.Conversation, error) {
	id, err := core.ParseConversationID(rawID)
	if err != nil {
		return nil, err
	}
	return s.registry.Get(id)
}

// GetTitle returns the derived title for a raw id string.
func (s *ConvoStore) GetTitle(rawID string) (string, error) {
	id, err := core.ParseConversationID(rawID)
	if err != nil {
		return "", err
	}
	return s.registry.GetTitle(id)
}

// GetMessages returns the ordered message projection for a raw id string.
func (s *ConvoStore) GetMessages(rawID string) ([]core.Message, error) {
	id, err := core.ParseConversationID(rawID)
	if err != nil {
		return nil, err
	}
	return s.registry.GetMessages(id)
}

// CreateConversation creates, persists and announces a new empty
// conversation.
func (s *ConvoStore) CreateConversation() (*core.Conversation, error) {
	conv, n, err := s.registry.CreateConversation()
	if err != nil {
		return nil, err
	}
	if err := s.emit(n); err != nil {
		return nil, err
	}
	return conv, nil
}

// SetTitle changes a conversation's title. Setting the current title again
// succeeds without appending an event, persisting or notifying.
func (s *ConvoStore) SetTitle(rawID, newTitle string) error {
	id, err := core.ParseConversationID(rawID)
	if err != nil {
		return err
	}
	n, err := s.registry.SetTitle(id, newTitle)
	if err != nil {
		return err
	}
	return s.emit(n)
}

// AddUserMessage appends a user message to a conversation.
func (s *ConvoStore) AddUserMessage(rawID, content string) error {
	id, err := core.ParseConversationID(rawID)
	if err != nil {
		return err
	}
	n, err := s.registry.AddUserMessage(id, content)
	if err != nil {
		return err
	}
	return s.emit(n)
}

// AddAssistantReply asks the configured completion backend for a reply to
// the conversation's newest message and appends it.
func (s *ConvoStore) AddAssistantReply(ctx context.Context, rawID string) error {
	if s.completer == nil {
		return fmt.Errorf("%w: no completer configured", core.ErrCompletion)
	}
	id, err := core.ParseConversationID(rawID)
	if err != nil {
		return err
	}
	n, err := s.registry.AddAssistantReply(ctx, id, s.completer)
	if err != nil {
		return err
	}
	return s.emit(n)
}

// emit sends a notification after the registry lock has been released.
// Persistence has already succeeded by this point; a notify failure is
// surfaced to the caller but durable state is not rolled back.
func (s *ConvoStore) emit(n *core.Notification) error {
	if n == nil {
		return nil
	}
	if err := s.notifier.Notify(*n); err != nil {
		s.logger.Warn("notification failed", "kind", n.Kind, "conversation_id", n.ConversationID.String(), "error", err)
		if errors.Is(err, core.ErrNotify) {
			return err
		}
		return fmt.Errorf("%w: %v", core.ErrNotify, err)
	}
	return nil
}
