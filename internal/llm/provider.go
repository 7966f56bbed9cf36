package llm

import "context"

// Provider is a chat completion backend. The answer generator holds one and
// sends a single grounded prompt per question.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Name reports the backend for logs, e.g. "openai" or "ollama".
	Name() string
}
