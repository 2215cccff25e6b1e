// Package llmcall provides model call recording and querying for
// traceability. Every gateway call is recorded with its contract
// reference, response, and metrics.
package llmcall

import (
	"time"

	"github.com/google/uuid"

	"github.com/vclens/vclens/internal/providers"
)

// Call represents a recorded model gateway call.
type Call struct {
	// Unique identifier
	ID string `json:"id"`

	// Timing
	Timestamp time.Time `json:"timestamp"`
	LatencyMs int       `json:"latency_ms"`

	// Context references
	ContractID string `json:"contract_id,omitempty"`
	FileName   string `json:"file_name,omitempty"`

	// Operation that triggered the call ("extract" or "chat").
	Operation string `json:"operation"`

	// Model info
	Provider string `json:"provider"`
	Model    string `json:"model"`

	// Token usage
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`

	// Response
	Response string `json:"response"`

	// Status
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RecordOptions provides context for recording a model call.
type RecordOptions struct {
	ContractID string
	FileName   string
	Operation  string
}

// FromChatResult creates a Call from a ChatResult.
// Returns nil if result is nil.
func FromChatResult(result *providers.ChatResult, opts RecordOptions) *Call {
	if result == nil {
		return nil
	}

	call := &Call{
		ID:           uuid.New().String(),
		Timestamp:    time.Now(),
		LatencyMs:    int(result.ExecutionTime.Milliseconds()),
		ContractID:   opts.ContractID,
		FileName:     opts.FileName,
		Operation:    opts.Operation,
		Provider:     result.Provider,
		Model:        result.ModelUsed,
		InputTokens:  result.PromptTokens,
		OutputTokens: result.CompletionTokens,
		Response:     result.Content,
		Success:      result.Success,
	}

	if !result.Success {
		call.Error = result.ErrorMessage
	}

	return call
}
