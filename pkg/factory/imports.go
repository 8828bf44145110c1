package factory

import (
	"github.com/arosling/go-toolbridge/pkg/llm"
	"github.com/arosling/go-toolbridge/pkg/providers/bedrock"
	"github.com/arosling/go-toolbridge/pkg/providers/deepseek"
	"github.com/arosling/go-toolbridge/pkg/providers/mock"
	"github.com/arosling/go-toolbridge/pkg/providers/openai"
	"github.com/arosling/go-toolbridge/pkg/providers/sagemaker"
)

func init() {
	// Register the SageMaker provider
	RegisterProvider("sagemaker", func(config llm.ClientConfig) (llm.Client, error) {
		return sagemaker.NewClient(config)
	})

	// Register the Bedrock provider
	RegisterProvider("bedrock", func(config llm.ClientConfig) (llm.Client, error) {
		return bedrock.NewClient(config)
	})

	// Register the OpenAI provider
	RegisterProvider("openai", func(config llm.ClientConfig) (llm.Client, error) {
		return openai.NewClient(config)
	})

	// Register the deepseek provider
	RegisterProvider("deepseek", func(config llm.ClientConfig) (llm.Client, error) {
		return deepseek.NewClient(config)
	})

	// Register the mock provider
	RegisterProvider("mock", func(config llm.ClientConfig) (llm.Client, error) {
		return mock.NewClient(config.Model), nil
	})
}
