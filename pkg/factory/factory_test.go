package factory

import (
	"testing"

	"github.com/arosling/go-toolbridge/pkg/llm"
)

func TestFactory(t *testing.T) {
	t.Parallel()

	t.Run("UnsupportedProvider", func(t *testing.T) {
		t.Parallel()

		factory := New()
		_, err := factory.CreateClient(llm.ClientConfig{Provider: "nonexistent"})
		if err == nil {
			t.Fatal("expected error for unsupported provider")
		}

		llmErr, ok := err.(*llm.Error)
		if !ok {
			t.Fatalf("expected *llm.Error, got %T", err)
		}
		if llmErr.Code != "unsupported_provider" {
			t.Errorf("expected unsupported_provider, got %s", llmErr.Code)
		}
	})

	t.Run("AutoRegistrationWorks", func(t *testing.T) {
		t.Parallel()

		providers := ListProviders()
		if len(providers) == 0 {
			t.Fatal("expected providers to be auto-registered, but none found")
		}

		for _, want := range []string{"sagemaker", "bedrock", "openai", "deepseek", "mock"} {
			if _, ok := GetProvider(want); !ok {
				t.Errorf("provider %q not registered", want)
			}
		}
	})

	t.Run("CreateMockClient", func(t *testing.T) {
		t.Parallel()

		factory := New()
		client, err := factory.CreateClient(llm.ClientConfig{
			Provider: "mock",
			Model:    "test-model",
		})
		if err != nil {
			t.Fatalf("failed to create mock client: %v", err)
		}
		defer client.Close()

		if client.GetModelInfo().Name != "test-model" {
			t.Errorf("unexpected model name %q", client.GetModelInfo().Name)
		}
	})

	t.Run("ProviderValidationPropagates", func(t *testing.T) {
		t.Parallel()

		factory := New()
		// sagemaker requires an endpoint name
		_, err := factory.CreateClient(llm.ClientConfig{Provider: "sagemaker"})
		if err == nil {
			t.Fatal("expected validation error from the sagemaker constructor")
		}
	})
}
