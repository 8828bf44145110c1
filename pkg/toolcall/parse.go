package toolcall

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

// ErrNoToolCall is returned when a model reply carries no tool_call span.
var ErrNoToolCall = errors.New("model reply contains no tool_call span")

// Invocation is a tool call parsed from model output. It exists only
// transiently between receiving a reply and executing the local function.
type Invocation struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
}

// Reply is the structured view of an initial model reply: an optional
// reasoning span and the single tool invocation.
type Reply struct {
	Reasoning  string
	Invocation Invocation
}

// ParseReply extracts the delimited spans from a raw model reply.
//
// The thinking span is optional; when several appear only the first is
// consumed. The tool_call span is required and its content must be a JSON
// object with a tool name and an argument mapping. Only a single pair of
// tool delimiters is considered; chained tool calls are not part of the
// protocol.
func ParseReply(text string) (*Reply, error) {
	reasoning, _ := llm.ExtractFirstTagBlock(text, ThinkingTag)

	span, ok := llm.ExtractFirstTagBlock(text, ToolCallTag)
	if !ok {
		return nil, ErrNoToolCall
	}

	var inv Invocation
	if err := json.Unmarshal([]byte(span), &inv); err != nil {
		return nil, fmt.Errorf("malformed tool_call span: %w", err)
	}
	if inv.ToolName == "" {
		return nil, fmt.Errorf("tool_call span is missing tool_name: %s", span)
	}

	return &Reply{Reasoning: reasoning, Invocation: inv}, nil
}
