// Package anthropic provides a model.Completer implementation using the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/convostore/core"
	"github.com/hupe1980/convostore/model"
)

// Options configures the Anthropic completer (model id, temperature, max
// tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Completer wraps the Anthropic Messages API behind the generic
// model.Completer interface.
type Completer struct {
	client *anthropic.Client
	opts   Options
}

// New creates a new Anthropic completer using the official client.
func New(optFns ...func(o *Options)) *Completer {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Completer{client: &client, opts: opts}
}

// NewFromClient creates a new Anthropic completer from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Completer {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Completer{client: client, opts: opts}
}

// buildMessages converts the prior message context plus prompt into Anthropic
// message params. The prompt always becomes the final user message.
func buildMessages(req model.Request) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(req.Context)+1)
	for _, m := range req.Context {
		switch m.Author {
		case core.AuthorAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)))
	return messages
}

// Complete implements model.Completer using a single non-streaming call.
func (c *Completer) Complete(ctx context.Context, req model.Request) (model.Response, error) {
	params := anthropic.MessageNewParams{
		Model:       c.opts.Model,
		Messages:    buildMessages(req),
		MaxTokens:   c.opts.MaxTokens,
		Temperature: anthropic.Float(c.opts.Temperature),
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return model.Response{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	if sb.Len() == 0 {
		return model.Response{}, fmt.Errorf("no text content returned")
	}

	return model.Response{Content: sb.String()}, nil
}

// Info returns metadata describing this Anthropic completer implementation.
func (c *Completer) Info() model.Info {
	return model.Info{Name: string(c.opts.Model), Provider: "anthropic"}
}
