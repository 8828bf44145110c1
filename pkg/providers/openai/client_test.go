package openai

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(llm.ClientConfig{Provider: "openai"})
	require.Error(t, err)

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llm.ErrTypeAuthentication, llmErr.Type)
}

func TestNewClientDefaultsModel(t *testing.T) {
	c, err := NewClient(llm.ClientConfig{Provider: "openai", APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultOpenAIModel, c.model)
}

func TestConvertRequest(t *testing.T) {
	c := &Client{model: "gpt-4o-mini"}
	maxTokens := 400

	req := c.convertRequest(llm.ChatRequest{
		Messages: []llm.Message{
			llm.NewTextMessage(llm.RoleUser, "what plays on WZPZ?"),
		},
		MaxTokens: &maxTokens,
	})

	assert.Equal(t, "gpt-4o-mini", req.Model)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, 400, req.MaxTokens)
}

func TestConvertRequestHonorsExplicitModel(t *testing.T) {
	c := &Client{model: "gpt-4o-mini"}

	req := c.convertRequest(llm.ChatRequest{Model: "gpt-4o"})
	assert.Equal(t, "gpt-4o", req.Model)
}

func TestConvertResponse(t *testing.T) {
	c := &Client{model: "gpt-4o-mini"}

	resp := c.convertResponse(openai.ChatCompletionResponse{
		ID:    "chatcmpl-1",
		Model: "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{
			{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: "hello"},
				FinishReason: openai.FinishReasonStop,
			},
		},
		Usage: openai.Usage{PromptTokens: 5, CompletionTokens: 1, TotalTokens: 6},
	})

	require.Len(t, resp.Choices, 1)
	assert.Equal(t, llm.RoleAssistant, resp.Choices[0].Message.Role)
	assert.Equal(t, "hello", resp.Choices[0].Message.Content)
	assert.Equal(t, 6, resp.Usage.TotalTokens)
}

func TestConvertError(t *testing.T) {
	err := convertError(&openai.APIError{
		Code:           "rate_limit_exceeded",
		Message:        "slow down",
		Type:           "rate_limit_error",
		HTTPStatusCode: 429,
	})

	assert.Equal(t, "rate_limit_exceeded", err.Code)
	assert.Equal(t, llm.ErrTypeRateLimit, err.Type)
	assert.Equal(t, 429, err.StatusCode)
}

func TestConvertErrorGeneric(t *testing.T) {
	err := convertError(assert.AnError)
	assert.Equal(t, "unknown_error", err.Code)
	assert.Equal(t, llm.ErrTypeAPI, err.Type)
}
