package toolcall_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arosling/go-toolbridge/pkg/llm"
	"github.com/arosling/go-toolbridge/pkg/providers/mock"
	"github.com/arosling/go-toolbridge/pkg/toolcall"
	"github.com/arosling/go-toolbridge/pkg/tools"
)

const initialReply = `<thinking>The user wants the chart for WZPZ, so I need the top_song tool.</thinking>
<tool_call>{"tool_name": "top_song", "arguments": {"sign": "WZPZ"}}</tool_call>`

const finalReply = `The most popular song on WZPZ is "Elemental Hotel" by 8 Storey Hike.`

func chartRegistry(t *testing.T) *toolcall.Registry {
	t.Helper()
	reg := toolcall.NewRegistry()
	require.NoError(t, tools.RegisterTopSong(reg))
	return reg
}

func TestRoundTripEndToEnd(t *testing.T) {
	client := mock.NewClient("mock-model").
		QueueText(initialReply).
		QueueText(finalReply)

	rt, err := toolcall.New(client, chartRegistry(t), toolcall.WithTemperature(0))
	require.NoError(t, err)

	result, err := rt.Run(context.Background(), "What is the most popular song on WZPZ?")
	require.NoError(t, err)

	assert.Contains(t, result.FinalAnswer, "Elemental Hotel")
	assert.Contains(t, result.FinalAnswer, "8 Storey Hike")
	assert.Equal(t, "top_song", result.Invocation.ToolName)
	assert.Equal(t, "WZPZ", result.Invocation.Arguments["sign"])
	assert.Equal(t, "Elemental Hotel", result.ToolResult["song"])
	assert.NotEmpty(t, result.Reasoning)

	// user prompt, assistant reply, wrapped tool result, final answer
	require.Len(t, result.Conversation, 4)
	assert.Equal(t, llm.RoleUser, result.Conversation[0].Role)
	assert.Equal(t, llm.RoleAssistant, result.Conversation[1].Role)
	assert.Equal(t, llm.RoleUser, result.Conversation[2].Role)
	assert.Contains(t, result.Conversation[2].Content, `"content"`, "tool result must be wrapped in the envelope")
	assert.Equal(t, llm.RoleAssistant, result.Conversation[3].Role)

	// exactly two endpoint invocations, the second carrying the full history
	calls := client.Calls()
	require.Len(t, calls, 2)
	assert.Len(t, calls[0].Messages, 1)
	assert.Len(t, calls[1].Messages, 3)
	require.NotNil(t, calls[0].MaxTokens)
	assert.Equal(t, toolcall.DefaultMaxTokens, *calls[0].MaxTokens)
}

func TestRoundTripDeterministicInvocation(t *testing.T) {
	run := func() toolcall.Invocation {
		client := mock.NewClient("mock-model").QueueText(initialReply).QueueText(finalReply)
		rt, err := toolcall.New(client, chartRegistry(t), toolcall.WithTemperature(0))
		require.NoError(t, err)

		result, err := rt.Run(context.Background(), "What is the most popular song on WZPZ?")
		require.NoError(t, err)
		return result.Invocation
	}

	assert.Equal(t, run(), run(), "temperature-zero reruns must parse the same invocation")
}

func TestRoundTripTransportErrorPropagates(t *testing.T) {
	transportErr := &llm.Error{Code: "endpoint_unavailable", Message: "connection refused", Type: llm.ErrTypeAPI, StatusCode: 503}
	client := mock.NewClient("mock-model").QueueError(transportErr)

	rt, err := toolcall.New(client, chartRegistry(t))
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "anything")
	require.Error(t, err)
	assert.Same(t, transportErr, err, "transport errors propagate unchanged, no retry")
	assert.Len(t, client.Calls(), 1)
}

func TestRoundTripParseFailureIsTerminal(t *testing.T) {
	client := mock.NewClient("mock-model").QueueText("no delimiters at all")

	rt, err := toolcall.New(client, chartRegistry(t))
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, toolcall.ErrNoToolCall)
	assert.Len(t, client.Calls(), 1, "no second invocation after a parse failure")
}

func TestRoundTripDomainErrorPropagates(t *testing.T) {
	badStation := `<tool_call>{"tool_name": "top_song", "arguments": {"sign": "WKRP"}}</tool_call>`
	client := mock.NewClient("mock-model").QueueText(badStation)

	rt, err := toolcall.New(client, chartRegistry(t))
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "What plays on WKRP?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WKRP", "domain error must name the unrecognized station")
}

func TestRoundTripUnknownToolName(t *testing.T) {
	rogue := `<tool_call>{"tool_name": "rm_rf", "arguments": {}}</tool_call>`
	client := mock.NewClient("mock-model").QueueText(rogue)

	rt, err := toolcall.New(client, chartRegistry(t))
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tool "rm_rf"`)
}

func TestRoundTripRequiresClientAndTools(t *testing.T) {
	_, err := toolcall.New(nil, chartRegistry(t))
	assert.Error(t, err)

	_, err = toolcall.New(mock.NewClient("m"), toolcall.NewRegistry())
	assert.Error(t, err)
}

func TestRoundTripContextCancellation(t *testing.T) {
	client := mock.NewClient("mock-model")
	reg := toolcall.NewRegistry()
	require.NoError(t, reg.Register(llm.NewFunctionTool("block", "", nil),
		func(ctx context.Context, _ map[string]any) (map[string]any, error) {
			<-ctx.Done()
			return nil, fmt.Errorf("tool interrupted: %w", ctx.Err())
		}))
	client.QueueText(`<tool_call>{"tool_name": "block", "arguments": {}}</tool_call>`)

	rt, err := toolcall.New(client, reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = rt.Run(ctx, "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
