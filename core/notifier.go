package core

// Notification kinds emitted to the external UI channel. The kind doubles as
// the topic / event name on the wire.
const (
	NotificationConversationCreated = "new_conversation"
	NotificationTitleChanged        = "conversation_title_changed"
	NotificationMessageAdded        = "conversation_message_added"
)

// Notification is the payload of one UI notification. Only the fields
// relevant to its kind are populated.
type Notification struct {
	Kind           string         `json:"-"`
	ConversationID ConversationID `json:"conversation_id"`
	Title          string         `json:"title,omitempty"`
	Author         Author         `json:"author,omitempty"`
	Content        string         `json:"content,omitempty"`
}

// NewConversationCreatedNotification announces a freshly created conversation.
func NewConversationCreatedNotification(id ConversationID, title string) Notification {
	return Notification{Kind: NotificationConversationCreated, ConversationID: id, Title: title}
}

// NewTitleChangedNotification announces a conversation's new title.
func NewTitleChangedNotification(id ConversationID, newTitle string) Notification {
	return Notification{Kind: NotificationTitleChanged, ConversationID: id, Title: newTitle}
}

// NewMessageAddedNotification announces a message appended to a conversation.
func NewMessageAddedNotification(id ConversationID, author Author, content string) Notification {
	return Notification{Kind: NotificationMessageAdded, ConversationID: id, Author: author, Content: content}
}

// Notifier is the one-way, fire-and-forget channel to the external UI layer.
// Callers must not invoke it before the mutation it describes has been
// durably persisted, and must invoke it outside the registry lock.
type Notifier interface {
	Notify(n Notification) error
}
