// Package openai provides a model.Completer implementation using the OpenAI
// Chat Completions API. It adapts the store's message projection into the
// SDK's message format and back.
package openai

import (
	"context"
	"fmt"

	"github.com/hupe1980/convostore/core"
	"github.com/hupe1980/convostore/model"
	"github.com/openai/openai-go"
)

// Options configure the OpenAI completer. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Completer wraps the OpenAI Chat Completions API behind the generic
// model.Completer interface.
type Completer struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI completer using the official client.
func New(optFns ...func(o *Options)) *Completer {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI completer from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Completer {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Completer{client: client, opts: opts}
}

// buildMessages converts the prior message context plus prompt into chat
// messages, preserving order and author roles. The prompt always becomes the
// final user message.
func buildMessages(req model.Request) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Context)+1)
	for _, m := range req.Context {
		switch m.Author {
		case core.AuthorAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(req.Prompt))
	return messages
}

// Complete implements model.Completer using a single non-streaming call.
func (c *Completer) Complete(ctx context.Context, req model.Request) (model.Response, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req),
		Model:               c.opts.Model,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return model.Response{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Response{}, fmt.Errorf("no choices returned")
	}

	return model.Response{Content: resp.Choices[0].Message.Content}, nil
}

// Info returns metadata describing this OpenAI completer implementation.
func (c *Completer) Info() model.Info {
	return model.Info{Name: c.opts.Model, Provider: "openai"}
}
