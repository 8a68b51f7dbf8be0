package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/convostore/core"
)

// Request captures the normalized completion input: the ordered message
// context up to but excluding the newest message, which is passed separately
// as the prompt.
type Request struct {
	Context []core.Message `json:"context"`
	Prompt  string         `json:"prompt"`
}

// Response carries the assistant reply text.
type Response struct {
	Content string `json:"content"`
}

// Info contains metadata about a completer implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Completer is the minimal interface required to produce an assistant reply.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the completer implementation.
	Info() Info
}

// MockCompleter is a lightweight in-memory Completer useful for tests &
// examples. Canned replies are keyed by prompt; unknown prompts get a
// deterministic echo response.
type MockCompleter struct {
	info      Info
	responses map[string]string
	err       error
}

// NewMockCompleter constructs a MockCompleter.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{
		info:      Info{Name: "mock", Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned reply for a prompt.
func (m *MockCompleter) AddResponse(prompt, response string) { m.responses[prompt] = response }

// FailWith makes every subsequent Complete call return err. Pass nil to clear.
func (m *MockCompleter) FailWith(err error) { m.err = err }

// Complete implements Completer.
func (m *MockCompleter) Complete(_ context.Context, req Request) (Response, error) {
	if m.err != nil {
		return Response{}, m.err
	}
	if resp, ok := m.responses[req.Prompt]; ok {
		return Response{Content: resp}, nil
	}
	return Response{Content: fmt.Sprintf("Mock response to: %s", req.Prompt)}, nil
}

// Info implements Completer.
func (m *MockCompleter) Info() Info { return m.info }
