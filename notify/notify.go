// Package notify provides core.Notifier implementations for the UI-facing
// notification channel. Notifications are fire-and-forget: they are emitted
// only after the mutation they describe has been persisted, and a failed
// emission never rolls anything back.
package notify

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hupe1980/convostore/core"
)

// NoOp discards all notifications. Useful for tests or headless operation.
type NoOp struct{}

// Notify implements core.Notifier.
func (NoOp) Notify(core.Notification) error { return nil }

// NotifierFunc adapts a plain function to the core.Notifier interface.
type NotifierFunc func(n core.Notification) error

// Notify implements core.Notifier.
func (f NotifierFunc) Notify(n core.Notification) error { return f(n) }

// Publisher forwards notifications to a watermill publisher. The
// notification kind doubles as the topic and the payload is JSON-encoded, so
// any watermill-compatible transport (in-process channel, message broker)
// can carry the UI events.
type Publisher struct {
	pub message.Publisher
}

// NewPublisher wraps pub as a core.Notifier.
func NewPublisher(pub message.Publisher) *Publisher {
	return &Publisher{pub: pub}
}

// Notify implements core.Notifier.
func (p *Publisher) Notify(n core.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrNotify, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), b)
	msg.Metadata.Set("kind", n.Kind)

	if err := p.pub.Publish(n.Kind, msg); err != nil {
		return fmt.Errorf("%w: %v", core.ErrNotify, err)
	}

	return nil
}
