// Package llm abstracts chat-completion vendors behind a single
// Generate call that returns schema-validated JSON. Concrete providers
// wrap one SDK each; WithRetry and WithLogging compose around the
// shared interface.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate runs one completion. When req.Schema is set the provider
	// requests native structured output and the returned Content is the
	// validated JSON document.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the resolved model identifier.
	ModelID() string
}

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of conversation history.
type Message struct {
	Role    Role
	Content string
}

// Request is a single prompt for Generate.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages carries the conversation so far. A single-turn request
	// holds exactly one user message.
	Messages []Message

	// Schema, when non-nil, forces the response into this JSON shape
	// through the provider's structured output mechanism. When nil,
	// Content comes back as raw text wrapped in a JSON string.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in [0.0, 1.0]; zero means deterministic.
	Temperature float64
}

// Schema names a JSON Schema the response must satisfy.
type Schema struct {
	// Name identifies the schema to the vendor, e.g. "lesson-turn".
	Name string

	// Description tells the model what the document represents.
	Description string

	// Definition is the schema itself as a decoded JSON object.
	Definition map[string]any
}

// Response is the outcome of one Generate call.
type Response struct {
	// Content is validated JSON when the request carried a Schema,
	// otherwise the raw text as a JSON string.
	Content json.RawMessage

	// Usage counts tokens billed for this call.
	Usage Usage

	// Model is the identifier the vendor reports actually served the
	// request, which can differ from the one asked for.
	Model string

	// StopReason is normalized across vendors: "end", "max_tokens" or
	// "error".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
