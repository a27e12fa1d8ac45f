// Package llm provides chat-completion access for the critique engine's
// assumption suggestions. Providers are optional: with none configured
// the rest of the toolchain runs fully offline.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw completion text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion
type CompletionRequest struct {
	// System sets the assistant's role for the exchange
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the configured model for this request
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// CompletionResponse contains the completion output
type CompletionResponse struct {
	// Text is the completion content, trimmed
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., an Ollama instance exposing the
	// OpenAI-compatible API)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond caps the call rate per provider
	RequestsPerSecond float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "",
		Model:             "",
		Timeout:           30,
		MaxTokens:         1000,
		RequestsPerSecond: 1,
	}
}

// NewProvider creates a provider from configuration. An empty provider
// name yields (nil, nil), meaning LLM features are disabled.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		// Ollama serves an OpenAI-compatible endpoint
		if config.BaseURL == "" {
			config.BaseURL = "http://localhost:11434/v1"
		}
		if config.APIKey == "" {
			config.APIKey = "ollama"
		}
		return NewOpenAIProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}
