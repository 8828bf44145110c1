// Client configuration and environment loading
package llm

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultDeepSeekModel = "deepseek-chat"
	DefaultBedrockModel  = "anthropic.claude-3-haiku-20240307-v1:0"
	DefaultRegion        = "us-east-1"
)

// ClientConfig is the explicit configuration record for creating endpoint
// clients. It is constructed once at process start and passed by reference
// to every operation that needs it; there is no ambient session state.
type ClientConfig struct {
	Provider string `json:"provider"` // sagemaker, bedrock, openai, deepseek, mock
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`

	// Region is the cloud region for AWS-hosted providers
	Region string `json:"region,omitempty"`

	// Endpoint names the pre-provisioned hosted endpoint to invoke
	// (sagemaker provider).
	Endpoint string `json:"endpoint,omitempty"`

	// InferenceComponent optionally names a sub-component on a
	// multi-model endpoint (sagemaker provider).
	InferenceComponent string `json:"inference_component,omitempty"`

	Timeout time.Duration     `json:"timeout,omitempty"`
	Extra   map[string]string `json:"extra,omitempty"` // provider-specific knobs
}

// ConfigFromEnv builds a ClientConfig from the environment. Provider
// selection follows a fixed priority: an explicitly named hosted endpoint
// wins, then API-key providers, then the mock provider as a last resort so
// the CLI stays usable offline.
func ConfigFromEnv() ClientConfig {
	if endpoint := os.Getenv("TOOLBRIDGE_ENDPOINT"); endpoint != "" {
		return ClientConfig{
			Provider:           "sagemaker",
			Endpoint:           endpoint,
			InferenceComponent: os.Getenv("TOOLBRIDGE_INFERENCE_COMPONENT"),
			Region:             envOr("AWS_REGION", DefaultRegion),
			Timeout:            timeoutFromEnv("TOOLBRIDGE_TIMEOUT", 60*time.Second),
		}
	}

	if model := os.Getenv("TOOLBRIDGE_BEDROCK_MODEL"); model != "" {
		return ClientConfig{
			Provider: "bedrock",
			Model:    model,
			Region:   envOr("AWS_REGION", DefaultRegion),
			Timeout:  timeoutFromEnv("TOOLBRIDGE_TIMEOUT", 60*time.Second),
		}
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		return ClientConfig{
			Provider: "openai",
			Model:    envOr("OPENAI_MODEL", DefaultOpenAIModel),
			APIKey:   apiKey,
			BaseURL:  os.Getenv("OPENAI_BASE_URL"),
			Timeout:  timeoutFromEnv("TOOLBRIDGE_TIMEOUT", 30*time.Second),
		}
	}

	if apiKey := os.Getenv("DEEPSEEK_API_KEY"); apiKey != "" {
		return ClientConfig{
			Provider: "deepseek",
			Model:    envOr("DEEPSEEK_MODEL", DefaultDeepSeekModel),
			APIKey:   apiKey,
			Timeout:  timeoutFromEnv("TOOLBRIDGE_TIMEOUT", 30*time.Second),
		}
	}

	return ClientConfig{
		Provider: "mock",
		Model:    "mock-model",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// timeoutFromEnv parses a timeout in seconds, falling back on bad input
func timeoutFromEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
