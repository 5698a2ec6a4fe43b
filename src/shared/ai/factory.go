package ai

import "errors"

// ErrUnconfigured marks a client built without an API key; callers fall
// back to canned responses instead of retrying.
var ErrUnconfigured = errors.New("completion provider not configured")

// Factory inputs to construct a client without leaking provider details.
type FactoryConfig struct {
	Provider     string // "mistral" is the only provider today
	MistralKey   string
	SystemPrompt string
	// Defaults
	Model       string
	Temperature float64
	MaxTokens   int
}

// NewClient returns a provider-agnostic AI client.
func NewClient(cfg FactoryConfig) Client {
	switch cfg.Provider {
	default:
		return newMistralClient(cfg)
	}
}
