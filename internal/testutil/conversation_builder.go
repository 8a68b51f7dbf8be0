package testutil

import (
	"time"

	"github.com/hupe1980/convostore/core"
)

// ConversationBuilder provides a fluent helper for constructing conversations
// in tests. Example:
//
//	conv := NewConversationBuilder().UserMessage("hi").AssistantMessage("hello").Title("Greeting").Build()
//
// Records get deterministic, strictly increasing timestamps so ordering
// assertions stay stable.
type ConversationBuilder struct {
	id      core.ConversationID
	records []core.EventRecord
	at      time.Time
}

// NewConversationBuilder creates a builder with a fresh id and a fixed base
// timestamp.
func NewConversationBuilder() *ConversationBuilder {
	return &ConversationBuilder{
		id: core.NewConversationID(),
		at: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ID overrides the auto-generated conversation id (chainable).
func (b *ConversationBuilder) ID(id core.ConversationID) *ConversationBuilder {
	b.id = id
	return b
}

// At sets the timestamp for the next appended record (chainable).
func (b *ConversationBuilder) At(t time.Time) *ConversationBuilder {
	b.at = t
	return b
}

// UserMessage appends a user MessageAdded event (chainable).
func (b *ConversationBuilder) UserMessage(content string) *ConversationBuilder {
	return b.event(core.MessageAdded{Author: core.AuthorUser, Content: content})
}

// AssistantMessage appends an assistant MessageAdded event (chainable).
func (b *ConversationBuilder) AssistantMessage(content string) *ConversationBuilder {
	return b.event(core.MessageAdded{Author: core.AuthorAssistant, Content: content})
}

// Title appends a TitleChanged event (chainable).
func (b *ConversationBuilder) Title(title string) *ConversationBuilder {
	return b.event(core.TitleChanged{NewTitle: title})
}

func (b *ConversationBuilder) event(ev core.Event) *ConversationBuilder {
	b.records = append(b.records, core.EventRecord{Event: ev, Timestamp: b.at})
	b.at = b.at.Add(time.Second)
	return b
}

// Build materializes the conversation.
func (b *ConversationBuilder) Build() *core.Conversation {
	history := make([]core.EventRecord, len(b.records))
	copy(history, b.records)
	return &core.Conversation{ID: b.id, History: history}
}
