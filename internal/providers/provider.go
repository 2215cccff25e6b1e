// Package providers holds the model gateway: clients for hosted language
// models behind a narrow interface so the non-deterministic oracle can be
// swapped for a stub in tests.
package providers

import (
	"context"
	"time"
)

// Fixed decoding parameters for contract extraction calls.
const (
	DefaultMaxTokens   = 512
	DefaultTemperature = 0.7
	DefaultTopP        = 0.95
)

// LLMClient sends a single-turn chat request to a hosted model.
type LLMClient interface {
	// Chat issues one synchronous call and returns the raw text response.
	// Transport and service failures come back as an error-shaped ChatResult
	// alongside the error, so callers always get a valid envelope.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)

	// Name returns the client identifier (e.g. "openai").
	Name() string
}

// ChatRequest is a single-turn request to the model.
type ChatRequest struct {
	// Message is the rendered user prompt.
	Message string `json:"message"`

	// SystemMessage precedes the user message; empty by default.
	SystemMessage string `json:"system_message,omitempty"`

	// Model overrides the client's default model when non-empty.
	Model string `json:"model,omitempty"`

	// Decoding parameters. Zero values fall back to the package defaults.
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

// ChatResult is the complete response from a model call.
type ChatResult struct {
	Content string `json:"content"`

	// Token counts as reported by the service.
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	ExecutionTime time.Duration `json:"execution_time"`

	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	Success      bool   `json:"success"`
	ErrorType    string `json:"error_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// applyDefaults fills unset decoding parameters.
func (r *ChatRequest) applyDefaults() {
	if r.MaxTokens == 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	if r.Temperature == 0 {
		r.Temperature = DefaultTemperature
	}
	if r.TopP == 0 {
		r.TopP = DefaultTopP
	}
}
