// Package contracts implements the extraction and chat workflows: it
// stores uploaded documents, extracts their text, renders the fixed
// prompt, calls the model gateway, and normalizes the response.
package contracts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vclens/vclens/internal/extract"
	"github.com/vclens/vclens/internal/llmcall"
	"github.com/vclens/vclens/internal/normalize"
	"github.com/vclens/vclens/internal/prompt"
	"github.com/vclens/vclens/internal/providers"
	"github.com/vclens/vclens/internal/store"
)

// ErrEmptyText means a document produced no extractable text. No model
// call is made for such documents.
var ErrEmptyText = errors.New("no text could be extracted from document")

// GatewayError wraps a model gateway failure so transport code can map
// it to an upstream-failure status.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("model gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// ModelParams are the decoding parameters applied to every gateway call.
type ModelParams struct {
	Model         string
	SystemMessage string
	MaxTokens     int
	Temperature   float64
	TopP          float64
}

// Result is the outcome of an extraction or chat operation.
type Result struct {
	Document store.Document
	Details  normalize.Details
}

// Service runs the contract workflows against a document store and a
// model gateway.
type Service struct {
	store    store.Store
	registry *providers.Registry
	gateway  string
	params   ModelParams
	calls    *llmcall.Log
	logger   *slog.Logger
}

// Config assembles a Service.
type Config struct {
	Store    store.Store
	Registry *providers.Registry
	Gateway  string // registry name of the gateway to use
	Params   ModelParams
	Calls    *llmcall.Log
	Logger   *slog.Logger
}

// NewService creates a contract service.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gateway := cfg.Gateway
	if gateway == "" {
		gateway = providers.OpenAIName
	}
	return &Service{
		store:    cfg.Store,
		registry: cfg.Registry,
		gateway:  gateway,
		params:   cfg.Params,
		calls:    cfg.Calls,
		logger:   logger,
	}
}

// Extract saves an uploaded document, extracts its text, and returns
// the normalized contract details from one model call.
func (s *Service) Extract(ctx context.Context, fileName string, src io.Reader) (*Result, error) {
	doc, err := s.store.Save(fileName, src)
	if err != nil {
		return nil, err
	}

	details, err := s.analyze(ctx, doc, "")
	if err != nil {
		return &Result{Document: doc}, err
	}
	return &Result{Document: doc, Details: details}, nil
}

// Chat re-runs extraction for a stored document with the user's message
// appended to the prompt.
func (s *Service) Chat(ctx context.Context, id, message string) (*Result, error) {
	doc, err := s.store.Resolve(id)
	if err != nil {
		return nil, err
	}

	details, err := s.analyze(ctx, doc, message)
	if err != nil {
		return &Result{Document: doc}, err
	}
	return &Result{Document: doc, Details: details}, nil
}

// List returns all stored documents.
func (s *Service) List() ([]store.Document, error) {
	return s.store.List()
}

// analyze extracts text from doc, renders the prompt, and makes one
// gateway call. The operation recorded is "extract" when message is
// empty and "chat" otherwise.
func (s *Service) analyze(ctx context.Context, doc store.Document, message string) (normalize.Details, error) {
	text, err := extract.Text(doc.Path, doc.Kind)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", doc.FileName, err)
	}
	if text == "" {
		return nil, fmt.Errorf("%s: %w", doc.FileName, ErrEmptyText)
	}

	client, err := s.registry.Get(s.gateway)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}

	operation := "extract"
	if message != "" {
		operation = "chat"
	}

	req := &providers.ChatRequest{
		Message:       prompt.Build(text, message),
		SystemMessage: s.params.SystemMessage,
		Model:         s.params.Model,
		MaxTokens:     s.params.MaxTokens,
		Temperature:   s.params.Temperature,
		TopP:          s.params.TopP,
	}

	result, callErr := client.Chat(ctx, req)
	s.record(result, doc, operation)

	if callErr != nil {
		s.logger.Error("model gateway call failed",
			"operation", operation,
			"file", doc.FileName,
			"error", callErr)
		return nil, &GatewayError{Err: callErr}
	}

	s.logger.Info("model gateway call succeeded",
		"operation", operation,
		"file", doc.FileName,
		"provider", result.Provider,
		"latency", result.ExecutionTime,
		"total_tokens", result.TotalTokens)

	return normalize.Parse(result.Content), nil
}

func (s *Service) record(result *providers.ChatResult, doc store.Document, operation string) {
	if s.calls == nil {
		return
	}
	s.calls.Record(llmcall.FromChatResult(result, llmcall.RecordOptions{
		ContractID: doc.ID,
		FileName:   doc.FileName,
		Operation:  operation,
	}))
}
