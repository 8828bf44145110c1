package factory

import (
	"fmt"
	"strings"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

const DefaultProvider = "sagemaker"

// Factory creates LLM clients based on configuration
type Factory struct{}

// New creates a new client factory
func New() *Factory {
	return &Factory{}
}

// CreateClient creates an LLM client based on the configuration. Provider
// constructors validate their own required fields, so the factory only
// resolves the name.
func (f *Factory) CreateClient(config llm.ClientConfig) (llm.Client, error) {
	provider := config.Provider
	if provider == "" {
		provider = DefaultProvider
	}
	provider = strings.ToLower(provider)

	constructor, exists := GetProvider(provider)
	if !exists {
		return nil, &llm.Error{
			Code:    "unsupported_provider",
			Message: fmt.Sprintf("unsupported provider: %s", provider),
			Type:    llm.ErrTypeValidation,
		}
	}

	return constructor(config)
}
