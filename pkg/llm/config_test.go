package llm

import (
	"testing"
	"time"
)

func TestConfigFromEnvEndpointWins(t *testing.T) {
	t.Setenv("TOOLBRIDGE_ENDPOINT", "song-endpoint")
	t.Setenv("TOOLBRIDGE_INFERENCE_COMPONENT", "mistral-ic")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("OPENAI_API_KEY", "sk-should-be-ignored")

	cfg := ConfigFromEnv()
	if cfg.Provider != "sagemaker" {
		t.Fatalf("Provider = %s, want sagemaker", cfg.Provider)
	}
	if cfg.Endpoint != "song-endpoint" {
		t.Errorf("Endpoint = %s", cfg.Endpoint)
	}
	if cfg.InferenceComponent != "mistral-ic" {
		t.Errorf("InferenceComponent = %s", cfg.InferenceComponent)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("Region = %s", cfg.Region)
	}
}

func TestConfigFromEnvOpenAI(t *testing.T) {
	t.Setenv("TOOLBRIDGE_ENDPOINT", "")
	t.Setenv("TOOLBRIDGE_BEDROCK_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("TOOLBRIDGE_TIMEOUT", "90")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Fatalf("Provider = %s, want openai", cfg.Provider)
	}
	if cfg.Model != DefaultOpenAIModel {
		t.Errorf("Model = %s, want default", cfg.Model)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %s, want 90s", cfg.Timeout)
	}
}

func TestConfigFromEnvFallsBackToMock(t *testing.T) {
	t.Setenv("TOOLBRIDGE_ENDPOINT", "")
	t.Setenv("TOOLBRIDGE_BEDROCK_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "")

	cfg := ConfigFromEnv()
	if cfg.Provider != "mock" {
		t.Fatalf("Provider = %s, want mock", cfg.Provider)
	}
}

func TestTimeoutFromEnvBadInput(t *testing.T) {
	t.Setenv("TOOLBRIDGE_TIMEOUT", "not-a-number")
	if got := timeoutFromEnv("TOOLBRIDGE_TIMEOUT", 7*time.Second); got != 7*time.Second {
		t.Errorf("timeoutFromEnv() = %s, want fallback 7s", got)
	}
}
