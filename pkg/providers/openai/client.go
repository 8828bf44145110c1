package openai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

// Client implements the llm.Client interface for OpenAI
type Client struct {
	client  *openai.Client
	model   string
	baseURL string
}

// NewClient creates a new OpenAI client
func NewClient(config llm.ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, &llm.Error{
			Code:    "missing_api_key",
			Message: "API key is required for OpenAI",
			Type:    llm.ErrTypeAuthentication,
		}
	}

	model := config.Model
	if model == "" {
		model = llm.DefaultOpenAIModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		baseURL: config.BaseURL,
	}, nil
}

// ChatCompletion performs a chat completion request
func (c *Client) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.convertRequest(req))
	if err != nil {
		return nil, convertError(err)
	}
	return c.convertResponse(resp), nil
}

// convertRequest converts our request to the OpenAI wire format
func (c *Client) convertRequest(req llm.ChatRequest) openai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = c.model
	}

	out := openai.ChatCompletionRequest{Model: model}

	for _, msg := range req.Messages {
		out.Messages = append(out.Messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	if req.MaxTokens != nil {
		out.MaxTokens = *req.MaxTokens
	}
	if req.Temperature != nil {
		out.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		out.TopP = *req.TopP
	}

	return out
}

// convertResponse converts the OpenAI response back to our format
func (c *Client) convertResponse(resp openai.ChatCompletionResponse) *llm.ChatResponse {
	out := &llm.ChatResponse{
		ID:    resp.ID,
		Model: resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	for _, choice := range resp.Choices {
		out.Choices = append(out.Choices, llm.Choice{
			Index:        choice.Index,
			Message:      llm.NewTextMessage(llm.MessageRole(choice.Message.Role), choice.Message.Content),
			FinishReason: string(choice.FinishReason),
		})
	}

	return out
}

// GetModelInfo returns information about the model being used
func (c *Client) GetModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:          c.model,
		Provider:      "openai",
		MaxTokens:     4096,
		SupportsTools: true,
	}
}

// Close cleans up any resources used by the client
func (c *Client) Close() error {
	return nil
}

// convertError converts OpenAI errors to our error format
func convertError(err error) *llm.Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := "unknown"
		if codeStr, ok := apiErr.Code.(string); ok {
			code = codeStr
		}
		return &llm.Error{
			Code:       code,
			Message:    apiErr.Message,
			Type:       apiErr.Type,
			StatusCode: apiErr.HTTPStatusCode,
		}
	}

	return &llm.Error{
		Code:    "unknown_error",
		Message: err.Error(),
		Type:    llm.ErrTypeAPI,
	}
}

var _ llm.Client = (*Client)(nil)
