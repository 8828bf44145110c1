package toolcall

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplyWellFormed(t *testing.T) {
	text := `<thinking>I should look the chart up.</thinking>
<tool_call>{"tool_name": "top_song", "arguments": {"sign": "WZPZ"}}</tool_call>`

	reply, err := ParseReply(text)
	require.NoError(t, err)

	assert.Equal(t, "I should look the chart up.", reply.Reasoning)
	assert.Equal(t, "top_song", reply.Invocation.ToolName)
	assert.Equal(t, "WZPZ", reply.Invocation.Arguments["sign"])
}

func TestParseReplyReasoningOptional(t *testing.T) {
	text := `<tool_call>{"tool_name": "top_song", "arguments": {"sign": "WZPZ"}}</tool_call>`

	reply, err := ParseReply(text)
	require.NoError(t, err)
	assert.Empty(t, reply.Reasoning)
	assert.Equal(t, "top_song", reply.Invocation.ToolName)
}

func TestParseReplyFirstReasoningConsumed(t *testing.T) {
	text := `<thinking>first</thinking><thinking>second</thinking>
<tool_call>{"tool_name": "top_song", "arguments": {}}</tool_call>`

	reply, err := ParseReply(text)
	require.NoError(t, err)
	assert.Equal(t, "first", reply.Reasoning)
}

func TestParseReplyMissingToolSpan(t *testing.T) {
	_, err := ParseReply("<thinking>no call here</thinking> just prose")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoToolCall), "missing span must map to ErrNoToolCall")
}

func TestParseReplyMalformedJSON(t *testing.T) {
	_, err := ParseReply(`<tool_call>{"tool_name": "top_song", "arguments": }</tool_call>`)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoToolCall)
	assert.Contains(t, err.Error(), "malformed tool_call span")
}

func TestParseReplyMissingToolName(t *testing.T) {
	_, err := ParseReply(`<tool_call>{"arguments": {"sign": "WZPZ"}}</tool_call>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing tool_name")
}
