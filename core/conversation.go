package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the title projection of a conversation without any
// TitleChanged event.
const DefaultTitle = "New Conversation"

// ConversationID is the canonical string form of a conversation UUID. It is
// assigned once at construction and never changes.
type ConversationID string

// NewConversationID returns a fresh random identifier.
func NewConversationID() ConversationID { return ConversationID(uuid.NewString()) }

// ParseConversationID validates raw as a UUID and returns its canonical form.
// Malformed input fails with ErrBadID, never ErrNotFound.
func ParseConversationID(raw string) (ConversationID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadID, raw)
	}
	return ConversationID(id.String()), nil
}

// String returns the identifier as a plain string.
func (id ConversationID) String() string { return string(id) }

// Conversation is the aggregate: an identity plus an ordered, append-only
// event history. Title and message views are always derived from the history,
// never stored as independent truth.
//
// Contract:
//   - History is append-only; no record is ever removed or reordered
//   - Title returns the content of the last TitleChanged event or DefaultTitle
//   - Messages returns the MessageAdded events in original insertion order
//   - Clone performs a deep copy for safe divergence
type Conversation struct {
	ID      ConversationID `json:"id"`
	History []EventRecord  `json:"history"`
}

// NewConversation creates an empty conversation with a fresh identity.
func NewConversation() *Conversation {
	return &Conversation{ID: NewConversationID(), History: []EventRecord{}}
}

// AddEvent appends ev with the current UTC timestamp and returns the record.
// It never fails; durability is the registry's job.
func (c *Conversation) AddEvent(ev Event) EventRecord {
	rec := EventRecord{Event: ev, Timestamp: time.Now().UTC()}
	c.History = append(c.History, rec)
	return rec
}

// Title returns the derived title of the conversation.
func (c *Conversation) Title() string { return DeriveTitle(c.History) }

// Messages returns the derived message list of the conversation.
func (c *Conversation) Messages() []Message { return DeriveMessages(c.History) }

// PromptContext splits the message projection into the prior context and the
// newest message, which callers feed to a completion backend as the prompt.
// It fails with ErrEmptyConversation when there is no message to prompt with.
func (c *Conversation) PromptContext() ([]Message, string, error) {
	msgs := DeriveMessages(c.History)
	if len(msgs) == 0 {
		return nil, "", ErrEmptyConversation
	}
	last := len(msgs) - 1
	return msgs[:last], msgs[last].Content, nil
}

// Clone returns a deep copy of the conversation safe for independent mutation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{ID: c.ID, History: make([]EventRecord, len(c.History))}
	copy(clone.History, c.History)
	return clone
}

// DeriveTitle folds the history down to the content of the last TitleChanged
// event, or DefaultTitle if none exists. Pure; depends only on history.
func DeriveTitle(history []EventRecord) string {
	for i := len(history) - 1; i >= 0; i-- {
		if ev, ok := history[i].Event.(TitleChanged); ok {
			return ev.NewTitle
		}
	}
	return DefaultTitle
}

// DeriveMessages filters the history down to its MessageAdded events,
// preserving original order. Pure; depends only on history.
func DeriveMessages(history []EventRecord) []Message {
	msgs := make([]Message, 0, len(history))
	for _, rec := range history {
		if ev, ok := rec.Event.(MessageAdded); ok {
			msgs = append(msgs, Message{Author: ev.Author, Content: ev.Content})
		}
	}
	return msgs
}
