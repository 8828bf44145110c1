package deepseek

import (
	"context"

	"github.com/cohesion-org/deepseek-go"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

// Client implements the llm.Client interface for DeepSeek
type Client struct {
	client *deepseek.Client
	model  string
}

// NewClient creates a new DeepSeek client
func NewClient(config llm.ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, &llm.Error{
			Code:    "missing_api_key",
			Message: "API key is required for DeepSeek",
			Type:    llm.ErrTypeAuthentication,
		}
	}

	model := config.Model
	if model == "" {
		model = llm.DefaultDeepSeekModel
	}

	var opts []deepseek.Option
	if config.BaseURL != "" {
		opts = append(opts, deepseek.WithBaseURL(config.BaseURL))
	}
	if config.Timeout > 0 {
		opts = append(opts, deepseek.WithTimeout(config.Timeout))
	}

	var client *deepseek.Client
	var err error
	if len(opts) > 0 {
		client, err = deepseek.NewClientWithOptions(config.APIKey, opts...)
		if err != nil {
			return nil, &llm.Error{
				Code:    "client_init_error",
				Message: err.Error(),
				Type:    llm.ErrTypeValidation,
			}
		}
	} else {
		client = deepseek.NewClient(config.APIKey)
	}

	return &Client{client: client, model: model}, nil
}

// ChatCompletion performs a chat completion request
func (c *Client) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	dsReq := c.convertRequest(req)

	resp, err := c.client.CreateChatCompletion(ctx, &dsReq)
	if err != nil {
		return nil, &llm.Error{
			Code:    "api_error",
			Message: err.Error(),
			Type:    llm.ErrTypeAPI,
		}
	}

	return c.convertResponse(resp), nil
}

// convertRequest converts our request to the DeepSeek format
func (c *Client) convertRequest(req llm.ChatRequest) deepseek.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = c.model
	}

	messages := make([]deepseek.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = deepseek.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	dsReq := deepseek.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}

	if req.Temperature != nil {
		dsReq.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		dsReq.MaxTokens = *req.MaxTokens
	}
	if req.TopP != nil {
		dsReq.TopP = *req.TopP
	}

	return dsReq
}

// convertResponse converts the DeepSeek response back to our format
func (c *Client) convertResponse(resp *deepseek.ChatCompletionResponse) *llm.ChatResponse {
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
			FinishReason: choice.FinishReason,
		})
	}

	return out
}

// GetModelInfo returns information about the model being used
func (c *Client) GetModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:          c.model,
		Provider:      "deepseek",
		MaxTokens:     8192,
		SupportsTools: true,
	}
}

// Close cleans up any resources used by the client
func (c *Client) Close() error {
	return nil
}

var _ llm.Client = (*Client)(nil)
