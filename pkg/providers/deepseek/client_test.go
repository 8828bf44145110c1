package deepseek

import (
	"testing"

	"github.com/cohesion-org/deepseek-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(llm.ClientConfig{Provider: "deepseek"})
	require.Error(t, err)

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llm.ErrTypeAuthentication, llmErr.Type)
}

func TestNewClientDefaultsModel(t *testing.T) {
	c, err := NewClient(llm.ClientConfig{Provider: "deepseek", APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultDeepSeekModel, c.model)
}

func TestConvertRequest(t *testing.T) {
	c := &Client{model: "deepseek-chat"}
	maxTokens := 400
	temp := float32(0.1)

	req := c.convertRequest(llm.ChatRequest{
		Messages: []llm.Message{
			llm.NewTextMessage(llm.RoleSystem, "be brief"),
			llm.NewTextMessage(llm.RoleUser, "what plays on WZPZ?"),
		},
		MaxTokens:   &maxTokens,
		Temperature: &temp,
	})

	assert.Equal(t, "deepseek-chat", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, 400, req.MaxTokens)
	assert.Equal(t, float32(0.1), req.Temperature)
}

func TestConvertResponse(t *testing.T) {
	c := &Client{model: "deepseek-chat"}

	resp := c.convertResponse(&deepseek.ChatCompletionResponse{
		ID:    "ds-1",
		Model: "deepseek-chat",
		Choices: []deepseek.Choice{
			{
				Index: 0,
				Message: deepseek.Message{
					Role:    "assistant",
					Content: "Elemental Hotel",
				},
				FinishReason: "stop",
			},
		},
		Usage: deepseek.Usage{PromptTokens: 8, CompletionTokens: 2, TotalTokens: 10},
	})

	require.Len(t, resp.Choices, 1)
	assert.Equal(t, llm.RoleAssistant, resp.Choices[0].Message.Role)
	assert.Equal(t, "Elemental Hotel", resp.Choices[0].Message.Content)
	assert.Equal(t, 10, resp.Usage.TotalTokens)
}
