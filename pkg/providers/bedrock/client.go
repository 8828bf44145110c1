package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

const defaultMaxTokens = 1000

// Client implements the llm.Client interface for AWS Bedrock
type Client struct {
	control *bedrock.Client
	runtime *bedrockruntime.Client
	model   string
	region  string
}

// NewClient creates a new AWS Bedrock client
func NewClient(config llm.ClientConfig) (*Client, error) {
	if config.Model == "" {
		return nil, llm.NewValidationError("missing_model", "model ID is required for the bedrock provider")
	}

	region := config.Region
	if region == "" {
		region = llm.DefaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, &llm.Error{
			Code:    "aws_config_error",
			Message: fmt.Sprintf("failed to load AWS configuration: %v", err),
			Type:    llm.ErrTypeAuthentication,
		}
	}

	control := bedrock.NewFromConfig(awsCfg, func(o *bedrock.Options) {
		if config.Extra != nil && config.Extra["bedrock_endpoint"] != "" {
			o.BaseEndpoint = aws.String(config.Extra["bedrock_endpoint"])
		}
	})

	runtime := bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
		if config.BaseURL != "" {
			o.BaseEndpoint = aws.String(config.BaseURL)
		}
	})

	return &Client{
		control: control,
		runtime: runtime,
		model:   config.Model,
		region:  region,
	}, nil
}

// ChatCompletion performs a chat completion request through Converse
func (c *Client) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	input, err := c.convertRequest(req)
	if err != nil {
		return nil, err
	}

	out, err := c.runtime.Converse(ctx, input)
	if err != nil {
		return nil, convertError(err)
	}

	return c.convertResponse(out)
}

// convertRequest maps our ChatRequest onto the Converse input shape
func (c *Client) convertRequest(req llm.ChatRequest) (*bedrockruntime.ConverseInput, error) {
	if len(req.Messages) == 0 {
		return nil, llm.NewValidationError("empty_conversation", "request carries no messages")
	}

	var system []types.SystemContentBlock
	var messages []types.Message

	for _, msg := range req.Messages {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, &types.SystemContentBlockMemberText{Value: msg.Content})
		case llm.RoleAssistant:
			messages = append(messages, types.Message{
				Role:    types.ConversationRoleAssistant,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: msg.Content}},
			})
		default:
			// Tool results are already serialized into user turns
			messages = append(messages, types.Message{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: msg.Content}},
			})
		}
	}

	inference := &types.InferenceConfiguration{
		MaxTokens: aws.Int32(defaultMaxTokens),
	}
	if req.MaxTokens != nil {
		inference.MaxTokens = aws.Int32(int32(*req.MaxTokens))
	}
	if req.Temperature != nil {
		inference.Temperature = aws.Float32(*req.Temperature)
	}
	if req.TopP != nil {
		inference.TopP = aws.Float32(*req.TopP)
	}

	return &bedrockruntime.ConverseInput{
		ModelId:         aws.String(c.model),
		Messages:        messages,
		System:          system,
		InferenceConfig: inference,
	}, nil
}

// convertResponse maps the Converse output back to our format
func (c *Client) convertResponse(out *bedrockruntime.ConverseOutput) (*llm.ChatResponse, error) {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, &llm.Error{
			Code:    "malformed_response",
			Message: "converse output carries no message",
			Type:    llm.ErrTypeAPI,
		}
	}

	var text strings.Builder
	for _, block := range msg.Value.Content {
		if t, ok := block.(*types.ContentBlockMemberText); ok {
			text.WriteString(t.Value)
		}
	}

	resp := &llm.ChatResponse{
		ID:    fmt.Sprintf("bedrock-%s", time.Now().Format(time.RFC3339Nano)),
		Model: c.model,
		Choices: []llm.Choice{
			{
				Index:        0,
				Message:      llm.NewTextMessage(llm.RoleAssistant, text.String()),
				FinishReason: string(out.StopReason),
			},
		},
	}

	if out.Usage != nil {
		resp.Usage = llm.Usage{
			PromptTokens:     int(aws.ToInt32(out.Usage.InputTokens)),
			CompletionTokens: int(aws.ToInt32(out.Usage.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(out.Usage.TotalTokens)),
		}
	}

	return resp, nil
}

// Ping verifies the account can reach the Bedrock control plane
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.control.ListFoundationModels(ctx, &bedrock.ListFoundationModelsInput{})
	if err != nil {
		return convertError(err)
	}
	return nil
}

// GetModelInfo returns information about the model being used
func (c *Client) GetModelInfo() llm.ModelInfo {
	return llm.ModelInfo{
		Name:          c.model,
		Provider:      "bedrock",
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

	var ourErr *llm.Error
	if errors.As(err, &ourErr) {
		return ourErr
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
		case "AccessDeniedException", "UnauthorizedOperation":
			return &llm.Error{
				Code:       "authentication_error",
				Message:    apiErr.ErrorMessage(),
				Type:       llm.ErrTypeAuthentication,
				StatusCode: 401,
			}
		case "ResourceNotFoundException":
			return &llm.Error{
				Code:       "model_not_found",
				Message:    apiErr.ErrorMessage(),
				Type:       llm.ErrTypeValidation,
				StatusCode: 404,
			}
		case "ValidationException":
			return &llm.Error{
				Code:       "validation_error",
				Message:    apiErr.ErrorMessage(),
				Type:       llm.ErrTypeValidation,
				StatusCode: 400,
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
