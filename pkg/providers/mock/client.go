package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

type step struct {
	resp *llm.ChatResponse
	err  error
}

// Client implements llm.Client with scripted replies for testing
type Client struct {
	mu      sync.Mutex
	model   string
	queue   []step
	callLog []llm.ChatRequest
	latency time.Duration
}

// NewClient creates a mock client serving the given model name
func NewClient(model string) *Client {
	return &Client{model: model}
}

// QueueText enqueues an assistant text reply
func (c *Client) QueueText(text string) *Client {
	return c.QueueResponse(llm.ChatResponse{
		ID:    fmt.Sprintf("mock-%d", time.Now().UnixNano()),
		Model: c.model,
		Choices: []llm.Choice{
			{Index: 0, Message: llm.NewTextMessage(llm.RoleAssistant, text), FinishReason: llm.FinishReasonStop},
		},
	})
}

// QueueResponse enqueues a full response
func (c *Client) QueueResponse(resp llm.ChatResponse) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, step{resp: &resp})
	return c
}

// QueueError enqueues an error reply
func (c *Client) QueueError(err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, step{err: err})
	return c
}

// WithLatency makes every call block for the given duration first
func (c *Client) WithLatency(d time.Duration) *Client {
	c.latency = d
	return c
}

// ChatCompletion records the request and serves the next scripted step.
// Draining the script is a test bug and fails loudly.
func (c *Client) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if c.latency > 0 {
		select {
		case <-time.After(c.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.callLog = append(c.callLog, req)

	if len(c.queue) == 0 {
		return nil, &llm.Error{
			Code:    "mock_exhausted",
			Message: "mock client has no scripted reply left",
			Type:    llm.ErrTypeAPI,
		}
	}

	next := c.queue[0]
	c.queue = c.queue[1:]
	if next.err != nil {
		return nil, next.err
	}
	return next.resp, nil
}

// GetModelInfo returns static capabilities for the scripted model
func (c *Client) GetModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:          c.model,
		Provider:      "mock",
		MaxTokens:     4096,
		SupportsTools: true,
	}
}

// Close does nothing for the mock client
func (c *Client) Close() error {
	return nil
}

// Calls returns every recorded request, in order
func (c *Client) Calls() []llm.ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llm.ChatRequest, len(c.callLog))
	copy(out, c.callLog)
	return out
}

// LastCall returns the most recent request, or nil when none was made
func (c *Client) LastCall() *llm.ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.callLog) == 0 {
		return nil
	}
	last := c.callLog[len(c.callLog)-1]
	return &last
}

var _ llm.Client = (*Client)(nil)
