package llm

import (
	"context"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript turn as the assistant backends see it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Option func(*Options)

// Options are per-call overrides. Backends that choose their own model ignore them.
type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider answers the shopping assistant's questions.
type LLMProvider interface {
	// Chat answers the last message of history; earlier turns are context.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate answers a single user prompt with no history.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
