// Message types and conversation helpers
package llm

import (
	"encoding/json"
	"fmt"
)

// MessageRole defines the role of a message sender
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// Message represents a single conversation turn. Content is free text, or
// a structured tool-result envelope serialized to text.
type Message struct {
	Role       MessageRole `json:"role"`
	Content    string      `json:"content"`
	ToolCalls  []ToolCall  `json:"tool_calls,omitempty"`
	ToolCallID string      `json:"tool_call_id,omitempty"`
}

// NewTextMessage creates a message with the given role and text content
func NewTextMessage(role MessageRole, text string) Message {
	return Message{Role: role, Content: text}
}

// HasToolCalls checks if the message carries any tool calls
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// Conversation is an ordered, append-only sequence of turns owned by the
// caller. It is not persisted anywhere.
type Conversation struct {
	turns []Message
}

// NewConversation creates a conversation seeded with the given turns
func NewConversation(turns ...Message) *Conversation {
	c := &Conversation{}
	c.turns = append(c.turns, turns...)
	return c
}

// Append adds turns to the end of the conversation
func (c *Conversation) Append(turns ...Message) {
	c.turns = append(c.turns, turns...)
}

// Turns returns a copy of the conversation's turns, so callers cannot
// mutate history already handed to a client.
func (c *Conversation) Turns() []Message {
	out := make([]Message, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Last returns the most recent turn, or false when the conversation is empty
func (c *Conversation) Last() (Message, bool) {
	if len(c.turns) == 0 {
		return Message{}, false
	}
	return c.turns[len(c.turns)-1], true
}

// ToolResultEnvelope is the wire wrapper around a locally executed tool's
// return value: {"content": [{...tool specific fields...}]}. The envelope
// itself is serialized and sent back as the content of a user turn.
type ToolResultEnvelope struct {
	Content []map[string]any `json:"content"`
}

// NewToolResultMessage wraps a tool's return value in the result envelope
// and returns it as a user turn ready to append to the conversation.
func NewToolResultMessage(result map[string]any) (Message, error) {
	envelope := ToolResultEnvelope{Content: []map[string]any{result}}
	data, err := json.Marshal(envelope)
	if err != nil {
		return Message{}, fmt.Errorf("failed to serialize tool result: %w", err)
	}
	return Message{Role: RoleUser, Content: string(data)}, nil
}
