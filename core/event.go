package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Author identifies who produced a message.
type Author string

const (
	// AuthorUser marks a message typed by the human user.
	AuthorUser Author = "user"
	// AuthorAssistant marks a message produced by the completion backend.
	AuthorAssistant Author = "assistant"
)

// Event is a single thing that happened to a conversation. Concrete event
// types implement the unexported isEvent marker enabling a closed set. Events
// are immutable once recorded; they are the only way conversation state
// changes.
type Event interface{ isEvent() }

// MessageAdded records one message being appended to the conversation.
type MessageAdded struct {
	Author  Author `json:"author"`
	Content string `json:"content"`
}

// isEvent implements the Event interface for MessageAdded.
func (MessageAdded) isEvent() {}

// TitleChanged records the conversation title being replaced.
type TitleChanged struct {
	NewTitle string `json:"new_title"`
}

// isEvent implements the Event interface for TitleChanged.
func (TitleChanged) isEvent() {}

// Message is the (author, content) view of a MessageAdded event produced by
// the message projection.
type Message struct {
	Author  Author `json:"author"`
	Content string `json:"content"`
}

// EventRecord pairs an event with the time it was recorded. Records are
// stored in arrival order inside a conversation and never removed or
// reordered.
type EventRecord struct {
	Event     Event
	Timestamp time.Time
}

// Wire tags for the event union. Stable; they are part of the persisted
// snapshot format.
const (
	eventTypeMessageAdded = "message_added"
	eventTypeTitleChanged = "title_changed"
)

type eventRecordJSON struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Event     json.RawMessage `json:"event"`
}

// MarshalJSON encodes the record as a tagged union so heterogeneous event
// types survive a snapshot round-trip.
func (r EventRecord) MarshalJSON() ([]byte, error) {
	var typ string

	switch r.Event.(type) {
	case MessageAdded:
		typ = eventTypeMessageAdded
	case TitleChanged:
		typ = eventTypeTitleChanged
	default:
		return nil, fmt.Errorf("unsupported event type %T", r.Event)
	}

	ev, err := json.Marshal(r.Event)
	if err != nil {
		return nil, err
	}

	return json.Marshal(eventRecordJSON{Type: typ, Timestamp: r.Timestamp, Event: ev})
}

// UnmarshalJSON decodes a tagged union produced by MarshalJSON.
func (r *EventRecord) UnmarshalJSON(data []byte) error {
	var raw eventRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case eventTypeMessageAdded:
		var ev MessageAdded
		if err := json.Unmarshal(raw.Event, &ev); err != nil {
			return err
		}
		r.Event = ev
	case eventTypeTitleChanged:
		var ev TitleChanged
		if err := json.Unmarshal(raw.Event, &ev); err != nil {
			return err
		}
		r.Event = ev
	default:
		return fmt.Errorf("unsupported event type %q", raw.Type)
	}

	r.Timestamp = raw.Timestamp

	return nil
}
