package sagemaker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/aws/smithy-go"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

// Client implements the llm.Client interface for SageMaker endpoints
type Client struct {
	runtime            *sagemakerruntime.Client
	endpoint           string
	inferenceComponent string
	region             string
}

// wireRequest is the JSON payload sent to the endpoint
type wireRequest struct {
	Messages    []wireMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature *float32      `json:"temperature,omitempty"`
	TopP        *float32      `json:"top_p,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// wireResponse is the JSON payload returned by the endpoint
type wireResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

const defaultMaxTokens = 512

// NewClient creates a client for a named SageMaker endpoint. The endpoint
// name is required; region falls back to the SDK default chain when empty.
func NewClient(config llm.ClientConfig) (*Client, error) {
	if config.Endpoint == "" {
		return nil, llm.NewValidationError("missing_endpoint", "endpoint name is required for the sagemaker provider")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if config.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(config.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, &llm.Error{
			Code:    "aws_config_error",
			Message: fmt.Sprintf("failed to load AWS configuration: %v", err),
			Type:    llm.ErrTypeAuthentication,
		}
	}

	runtime := sagemakerruntime.NewFromConfig(awsCfg, func(o *sagemakerruntime.Options) {
		if config.BaseURL != "" {
			o.BaseEndpoint = aws.String(config.BaseURL)
		}
	})

	return &Client{
		runtime:            runtime,
		endpoint:           config.Endpoint,
		inferenceComponent: config.InferenceComponent,
		region:             awsCfg.Region,
	}, nil
}

// ChatCompletion invokes the endpoint with the conversation. Transport
// failures are surfaced verbatim as *llm.Error.
func (c *Client) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	payload, err := c.buildPayload(req)
	if err != nil {
		return nil, err
	}

	input := &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(c.endpoint),
		ContentType:  aws.String("application/json"),
		Accept:       aws.String("application/json"),
		Body:         payload,
	}
	if c.inferenceComponent != "" {
		input.InferenceComponentName = aws.String(c.inferenceComponent)
	}

	out, err := c.runtime.InvokeEndpoint(ctx, input)
	if err != nil {
		return nil, convertError(err)
	}

	return c.parseResponse(out.Body)
}

// buildPayload serializes the request into the messages wire format
func (c *Client) buildPayload(req llm.ChatRequest) ([]byte, error) {
	if len(req.Messages) == 0 {
		return nil, llm.NewValidationError("empty_conversation", "request carries no messages")
	}

	wire := wireRequest{
		Messages:    make([]wireMessage, len(req.Messages)),
		MaxTokens:   defaultMaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	}
	for i, msg := range req.Messages {
		wire.Messages[i] = wireMessage{Role: string(msg.Role), Content: msg.Content}
	}
	if req.MaxTokens != nil {
		wire.MaxTokens = *req.MaxTokens
	}

	return json.Marshal(wire)
}

// parseResponse converts the endpoint's choices payload to our format
func (c *Client) parseResponse(body []byte) (*llm.ChatResponse, error) {
	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &llm.Error{
			Code:    "malformed_response",
			Message: fmt.Sprintf("endpoint returned invalid JSON: %v", err),
			Type:    llm.ErrTypeAPI,
		}
	}

	resp := &llm.ChatResponse{
		ID:    wire.ID,
		Model: wire.Model,
		Usage: llm.Usage{
			PromptTokens:     wire.Usage.PromptTokens,
			CompletionTokens: wire.Usage.CompletionTokens,
			TotalTokens:      wire.Usage.TotalTokens,
		},
	}
	if resp.ID == "" {
		resp.ID = fmt.Sprintf("sagemaker-%s", time.Now().Format(time.RFC3339Nano))
	}

	for _, choice := range wire.Choices {
		role := llm.MessageRole(choice.Message.Role)
		if role == "" {
			role = llm.RoleAssistant
		}
		resp.Choices = append(resp.Choices, llm.Choice{
			Index:        choice.Index,
			Message:      llm.NewTextMessage(role, choice.Message.Content),
			FinishReason: choice.FinishReason,
		})
	}

	return resp, nil
}

// GetModelInfo describes the endpoint. SageMaker does not expose model
// metadata at invocation time, so the capabilities are nominal.
func (c *Client) GetModelInfo() llm.ModelInfo {
	name := c.endpoint
	if c.inferenceComponent != "" {
		name = fmt.Sprintf("%s/%s", c.endpoint, c.inferenceComponent)
	}
	return llm.ModelInfo{
		Name:          name,
		Provider:      "sagemaker",
		MaxTokens:     defaultMaxTokens,
		SupportsTools: true,
	}
}

// Close cleans up any resources used by the client
func (c *Client) Close() error {
	// AWS SDK clients don't require explicit cleanup
	return nil
}

// convertError maps SDK failures to the standardized error format
func convertError(err error) *llm.Error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "TooManyRequestsException":
			return &llm.Error{
				Code:       "rate_limit_error",
				Message:    apiErr.ErrorMessage(),
				Type:       llm.ErrTypeRateLimit,
				StatusCode: 429,
			}
		case "AccessDeniedException", "UnrecognizedClientException":
			return &llm.Error{
				Code:       "authentication_error",
				Message:    apiErr.ErrorMessage(),
				Type:       llm.ErrTypeAuthentication,
				StatusCode: 401,
			}
		case "ValidationError", "ValidationException":
			return &llm.Error{
				Code:       "validation_error",
				Message:    apiErr.ErrorMessage(),
				Type:       llm.ErrTypeValidation,
				StatusCode: 400,
			}
		case "ModelError":
			return &llm.Error{
				Code:       "model_error",
				Message:    apiErr.ErrorMessage(),
				Type:       llm.ErrTypeAPI,
				StatusCode: 424,
			}
		case "ServiceUnavailable", "InternalFailure", "ModelNotReadyException":
			return &llm.Error{
				Code:       "endpoint_unavailable",
				Message:    apiErr.ErrorMessage(),
				Type:       llm.ErrTypeAPI,
				StatusCode: 503,
			}
		}
	}

	return &llm.Error{
		Code:    "api_error",
		Message: err.Error(),
		Type:    llm.ErrTypeAPI,
	}
}

var _ llm.Client = (*Client)(nil)
