package toolcall

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

// Fixed delimiter tags the model is instructed to use. They are matched
// literally in the reply; see pkg/llm spans helpers for the limitation
// notes on delimiter text appearing inside spans.
const (
	ThinkingTag = "thinking"
	ToolCallTag = "tool_call"
)

// BuildPrompt formats a user query and a tool catalog into a single text
// block. The serialized catalog is embedded verbatim, and the model is
// instructed to separate its reasoning and its tool invocation using the
// two delimiter pairs, emitting at most one of each.
func BuildPrompt(query string, catalog []llm.Tool) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", llm.NewValidationError("empty_query", "query must not be empty")
	}
	if len(catalog) == 0 {
		return "", llm.NewValidationError("empty_catalog", "tool catalog must not be empty")
	}

	serialized, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize tool catalog: %w", err)
	}

	var b strings.Builder
	b.WriteString("You have access to the following tools:\n\n")
	b.Write(serialized)
	b.WriteString("\n\n")
	b.WriteString("To answer the question you may call exactly one tool.\n")
	fmt.Fprintf(&b, "First write your reasoning inside a single <%s></%s> block.\n", ThinkingTag, ThinkingTag)
	fmt.Fprintf(&b, "Then request the tool inside a single <%s></%s> block containing a JSON object ", ToolCallTag, ToolCallTag)
	b.WriteString(`of the form {"tool_name": "<name>", "arguments": {<parameters>}}.` + "\n")
	b.WriteString("Emit at most one block of each kind and nothing after the tool call.\n\n")
	fmt.Fprintf(&b, "Question: %s", query)

	return b.String(), nil
}
