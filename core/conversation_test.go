package core

import "testing"

func TestConversation_TitleProjection(t *testing.T) {
	c := NewConversation()
	if c.Title() != DefaultTitle {
		t.Fatalf("expected default title, got %q", c.Title())
	}

	c.AddEvent(MessageAdded{Author: AuthorUser, Content: "hello"})
	c.AddEvent(TitleChanged{NewTitle: "First"})
	c.AddEvent(MessageAdded{Author: AuthorAssistant, Content: "hi"})
	c.AddEvent(TitleChanged{NewTitle: "Second"})

	if c.Title() != "Second" {
		t.Fatalf("expected last TitleChanged to win, got %q", c.Title())
	}
}

func TestConversation_MessagesProjection(t *testing.T) {
	c := NewConversation()
	c.AddEvent(MessageAdded{Author: AuthorUser, Content: "hello"})
	c.AddEvent(TitleChanged{NewTitle: "Greeting"})
	c.AddEvent(MessageAdded{Author: AuthorAssistant, Content: "hi there"})

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0] != (Message{Author: AuthorUser, Content: "hello"}) {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1] != (Message{Author: AuthorAssistant, Content: "hi there"}) {
		t.Errorf("unexpected second message: %+v", msgs[1])
	}
}

func TestConversation_PromptContext(t *testing.T) {
	c := NewConversation()
	if _, _, err := c.PromptContext(); err != ErrEmptyConversation {
		t.Fatalf("expected ErrEmptyConversation, got %v", err)
	}

	// A title-only history still has nothing to prompt with.
	c.AddEvent(TitleChanged{NewTitle: "Empty"})
	if _, _, err := c.PromptContext(); err != ErrEmptyConversation {
		t.Fatalf("expected ErrEmptyConversation for title-only history, got %v", err)
	}

	c.AddEvent(MessageAdded{Author: AuthorUser, Content: "one"})
	c.AddEvent(MessageAdded{Author: AuthorAssistant, Content: "two"})
	c.AddEvent(MessageAdded{Author: AuthorUser, Content: "three"})

	prior, prompt, err := c.PromptContext()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt != "three" {
		t.Errorf("expected newest message as prompt, got %q", prompt)
	}
	if len(prior) != 2 || prior[0].Content != "one" || prior[1].Content != "two" {
		t.Errorf("unexpected prior context: %+v", prior)
	}
}

func TestConversation_Clone(t *testing.T) {
	c := NewConversation()
	c.AddEvent(MessageAdded{Author: AuthorUser, Content: "hello"})

	clone := c.Clone()
	if clone == c {
		t.Error("Clone should be a different pointer")
	}
	if clone.ID != c.ID {
		t.Error("Clone should keep the identity")
	}

	clone.AddEvent(TitleChanged{NewTitle: "Diverged"})
	if len(c.History) != 1 {
		t.Errorf("original history should not grow with clone, got %d records", len(c.History))
	}
}

func TestParseConversationID(t *testing.T) {
	id := NewConversationID()
	parsed, err := ParseConversationID(id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("expected %q, got %q", id, parsed)
	}

	if _, err := ParseConversationID("not-a-uuid"); err == nil {
		t.Fatal("expected error for malformed id")
	}
}
