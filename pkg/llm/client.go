// Client interface implemented by all endpoint providers
package llm

import "context"

// Client is the core interface every hosted-endpoint client implements.
// Calls are synchronous and blocking; cancellation and deadlines come from
// the context.
type Client interface {
	// ChatCompletion sends the conversation to the remote endpoint and
	// returns its reply. Transport errors are returned unchanged as
	// *Error; the caller decides whether to retry.
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// GetModelInfo returns information about the model being served
	GetModelInfo() ModelInfo

	// Close releases any resources held by the client
	Close() error
}

// ChatCompleter is the minimal completion surface. It is what the retry
// wrapper and the round tripper actually need, so both accept it instead
// of the full Client.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ModelInfo describes the model behind an endpoint
type ModelInfo struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	MaxTokens     int    `json:"max_tokens"`
	SupportsTools bool   `json:"supports_tools"`
}
