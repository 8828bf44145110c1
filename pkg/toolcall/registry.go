package toolcall

import (
	"context"
	"fmt"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

// Handler executes a tool with the parsed argument mapping. A returned
// error is a domain failure and propagates to the round tripper's caller.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

type registered struct {
	descriptor llm.Tool
	handler    Handler
}

// Registry is a closed mapping from tool name to typed handler. Names are
// checked at registration, so an invocation of an unknown tool fails
// against a known-complete catalog rather than at call time with a
// half-configured one.
type Registry struct {
	tools map[string]registered
	order []string
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]registered)}
}

// Register adds a tool descriptor together with its local handler.
// Duplicate names and nil handlers are rejected.
func (r *Registry) Register(descriptor llm.Tool, handler Handler) error {
	name := descriptor.Function.Name
	if name == "" {
		return llm.NewValidationError("unnamed_tool", "tool descriptor has no function name")
	}
	if handler == nil {
		return llm.NewValidationError("nil_handler", "tool %q registered without a handler", name)
	}
	if _, exists := r.tools[name]; exists {
		return llm.NewValidationError("duplicate_tool", "tool %q is already registered", name)
	}

	r.tools[name] = registered{descriptor: descriptor, handler: handler}
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for static tool sets wired at process start,
// where a bad descriptor is a programming error.
func (r *Registry) MustRegister(descriptor llm.Tool, handler Handler) {
	if err := r.Register(descriptor, handler); err != nil {
		panic(err)
	}
}

// Catalog returns the registered tool descriptors in registration order.
// This is the catalog embedded into prompts.
func (r *Registry) Catalog() []llm.Tool {
	catalog := make([]llm.Tool, 0, len(r.order))
	for _, name := range r.order {
		catalog = append(catalog, r.tools[name].descriptor)
	}
	return catalog
}

// Validate checks the registry against a declared tool catalog: every
// declared tool must have a handler and every handler a declaration.
func (r *Registry) Validate(catalog []llm.Tool) error {
	declared := make(map[string]bool, len(catalog))
	for _, tool := range catalog {
		name := tool.Function.Name
		declared[name] = true
		if _, ok := r.tools[name]; !ok {
			return llm.NewValidationError("unhandled_tool", "declared tool %q has no registered handler", name)
		}
	}
	for _, name := range r.order {
		if !declared[name] {
			return llm.NewValidationError("undeclared_tool", "registered tool %q is missing from the declared catalog", name)
		}
	}
	return nil
}

// Dispatch executes the invocation's handler. Unknown tool names fail
// without calling anything.
func (r *Registry) Dispatch(ctx context.Context, inv Invocation) (map[string]any, error) {
	entry, ok := r.tools[inv.ToolName]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q requested by model", inv.ToolName)
	}
	return entry.handler(ctx, inv.Arguments)
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	return len(r.tools)
}
