package ai

import "context"

// Options override the client defaults for a single call.
type Options struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// Client is a provider-agnostic completion client.
type Client interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}
