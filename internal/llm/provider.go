// Package llm is the model-provider layer used when quizzes are generated
// directly instead of through the study assistant backend.
package llm

import (
	"context"
	"encoding/json"

	"github.com/abhisek/trivia/internal/schema"
)

// Provider generates a response from a language model.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured JSON output. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is the JSON Schema a structured response must satisfy. Name is
// sent as the tool or schema name, so keep it kebab-case.
type Schema = schema.Schema

// Response is a model's output.
type Response struct {
	// Content is validated JSON when a schema was requested, raw text
	// otherwise.
	Content json.RawMessage

	Usage Usage
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string, s *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    s,
		MaxTokens: maxTokens,
	}
}

// checkOutput validates structured output and maps violations to
// ErrInvalidResponse.
func checkOutput(s *Schema, content json.RawMessage) error {
	if err := schema.Validate(s, content); err != nil {
		return &ErrInvalidResponse{Content: content, Err: err}
	}
	return nil
}
