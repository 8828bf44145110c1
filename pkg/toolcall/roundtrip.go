package toolcall

import (
	"context"
	"fmt"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

// DefaultMaxTokens bounds the generation length of each endpoint call
const DefaultMaxTokens = 400

// RoundTripper drives one full tool-calling cycle: prompt, initial reply,
// local tool execution, final reply. It never retries and keeps no state
// across round trips; the conversation lives for a single Run call.
type RoundTripper struct {
	client      llm.ChatCompleter
	registry    *Registry
	model       string
	maxTokens   int
	temperature *float32
}

// Option customizes a RoundTripper
type Option func(*RoundTripper)

// WithModel sets the model name forwarded in requests, for providers that
// route by model rather than by endpoint.
func WithModel(model string) Option {
	return func(rt *RoundTripper) { rt.model = model }
}

// WithMaxTokens overrides the generation-length limit
func WithMaxTokens(n int) Option {
	return func(rt *RoundTripper) { rt.maxTokens = n }
}

// WithTemperature sets the sampling temperature. Zero makes the parsed
// tool invocation reproducible for a fixed query and catalog.
func WithTemperature(t float32) Option {
	return func(rt *RoundTripper) { rt.temperature = &t }
}

// New creates a RoundTripper over a client and a tool registry. The
// registry must already hold every tool the prompt will declare.
func New(client llm.ChatCompleter, registry *Registry, opts ...Option) (*RoundTripper, error) {
	if client == nil {
		return nil, llm.NewValidationError("nil_client", "round tripper requires a client")
	}
	if registry == nil || registry.Len() == 0 {
		return nil, llm.NewValidationError("empty_registry", "round tripper requires at least one registered tool")
	}

	rt := &RoundTripper{
		client:    client,
		registry:  registry,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt, nil
}

// Result collects everything a completed round trip produced
type Result struct {
	// Reasoning is the model's optional thinking span, verbatim
	Reasoning string

	// Invocation is the tool call parsed from the initial reply
	Invocation Invocation

	// ToolResult is the return value of the locally executed tool
	ToolResult map[string]any

	// FinalAnswer is the text of the second reply
	FinalAnswer string

	// Conversation holds every turn of the round trip, in order
	Conversation []llm.Message
}

// Run executes one round trip for the query. The cycle is linear with no
// recovery transitions: a transport error, a parse failure, or a tool
// domain error at any point ends the run and is returned unchanged.
func (rt *RoundTripper) Run(ctx context.Context, query string) (*Result, error) {
	prompt, err := BuildPrompt(query, rt.registry.Catalog())
	if err != nil {
		return nil, err
	}

	conv := llm.NewConversation(llm.NewTextMessage(llm.RoleUser, prompt))

	// Awaiting initial reply
	initial, err := rt.invoke(ctx, conv)
	if err != nil {
		return nil, err
	}
	raw := initial.FirstText()

	// Parsed tool call
	reply, err := ParseReply(raw)
	if err != nil {
		return nil, err
	}

	toolResult, err := rt.registry.Dispatch(ctx, reply.Invocation)
	if err != nil {
		return nil, err
	}

	resultMsg, err := llm.NewToolResultMessage(toolResult)
	if err != nil {
		return nil, err
	}
	conv.Append(llm.NewTextMessage(llm.RoleAssistant, raw), resultMsg)

	// Awaiting final reply
	final, err := rt.invoke(ctx, conv)
	if err != nil {
		return nil, err
	}
	answer := final.FirstText()
	if answer == "" {
		return nil, fmt.Errorf("endpoint returned an empty final reply")
	}
	conv.Append(llm.NewTextMessage(llm.RoleAssistant, answer))

	return &Result{
		Reasoning:    reply.Reasoning,
		Invocation:   reply.Invocation,
		ToolResult:   toolResult,
		FinalAnswer:  answer,
		Conversation: conv.Turns(),
	}, nil
}

// invoke sends the conversation with the configured generation limits.
// Endpoint errors propagate to the caller untouched.
func (rt *RoundTripper) invoke(ctx context.Context, conv *llm.Conversation) (*llm.ChatResponse, error) {
	maxTokens := rt.maxTokens
	req := llm.ChatRequest{
		Model:       rt.model,
		Messages:    conv.Turns(),
		MaxTokens:   &maxTokens,
		Temperature: rt.temperature,
	}
	return rt.client.ChatCompletion(ctx, req)
}
