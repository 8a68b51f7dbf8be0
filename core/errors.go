package core

import "fmt"

var (
	// ErrBadID is returned when an identifier string is not a valid UUID.
	ErrBadID = fmt.Errorf("malformed conversation id")
	// ErrNotFound is returned when a well-formed id has no matching conversation.
	ErrNotFound = fmt.Errorf("conversation not found")
	// ErrEmptyConversation is returned when an assistant reply is requested on
	// a conversation with no message to use as a prompt.
	ErrEmptyConversation = fmt.Errorf("conversation has no message to prompt with")
	// ErrCompletion is returned when the completion backend fails. The
	// conversation is left exactly as it was.
	ErrCompletion = fmt.Errorf("completion failed")
	// ErrSnapshotSave is returned when persisting the registry snapshot fails.
	// In-memory state may then be ahead of disk until the next successful save.
	ErrSnapshotSave = fmt.Errorf("snapshot save failed")
	// ErrSnapshotLoad is returned when reading the registry snapshot fails.
	ErrSnapshotLoad = fmt.Errorf("snapshot load failed")
	// ErrNotify is returned when the notification channel fails. Durable state
	// has already been updated by then and is not rolled back.
	ErrNotify = fmt.Errorf("notification failed")
)
