// Retry wrapper for chat completions with exponential backoff.
//
// The wrapper is strictly opt-in: the tool-call round tripper propagates
// transport errors unchanged, so anything that wants retries wraps its
// client before handing it over.
//
//	client, _ := factory.New().CreateClient(cfg)
//	retrying := llm.RetryChatCompletion(client)
//	resp, err := retrying.ChatCompletion(ctx, req)
package llm

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"math"
	"time"
)

// RetryConfig defines configuration options for the retry mechanism
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (default: 3).
	// Total requests = MaxRetries + 1.
	MaxRetries int

	// BaseDelay is the initial delay between retries (default: 1s)
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries (default: 60s)
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay after each retry (default: 2.0)
	BackoffFactor float64

	// Jitter randomizes delays by a factor in [0.5, 1.5) to avoid
	// synchronized retry storms (default: true).
	Jitter bool
}

// DefaultRetryConfig returns a sensible default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     1 * time.Second,
		MaxDelay:      60 * time.Second,
		BackoffFactor: 2.0,
		Jitter:        true,
	}
}

// RetryableChatCompleter wraps a ChatCompleter with retry functionality
type RetryableChatCompleter struct {
	client ChatCompleter
	config RetryConfig
}

// RetryChatCompletion wraps any ChatCompleter so that throttling errors
// (HTTP 429) and temporary server errors (5xx) are retried with
// exponential backoff. All other errors return immediately.
func RetryChatCompletion(client ChatCompleter, config ...RetryConfig) ChatCompleter {
	cfg := DefaultRetryConfig()
	if len(config) > 0 {
		cfg = config[0]
		if cfg.MaxRetries <= 0 {
			cfg.MaxRetries = 3
		}
		if cfg.BaseDelay <= 0 {
			cfg.BaseDelay = 1 * time.Second
		}
		if cfg.MaxDelay <= 0 {
			cfg.MaxDelay = 60 * time.Second
		}
		if cfg.BackoffFactor <= 0 {
			cfg.BackoffFactor = 2.0
		}
	}

	return &RetryableChatCompleter{client: client, config: cfg}
}

// ChatCompletion executes the chat completion with retry logic
func (r *RetryableChatCompleter) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		resp, err := r.client.ChatCompletion(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == r.config.MaxRetries {
			break
		}
		if !isRetryableError(err) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.calculateDelay(attempt)):
		}
	}

	return nil, lastErr
}

// isRetryableError reports whether the error is a throttling or temporary
// server failure worth retrying.
func isRetryableError(err error) bool {
	llmErr, ok := err.(*Error)
	if !ok {
		return false
	}
	if llmErr.Type == ErrTypeRateLimit || llmErr.StatusCode == 429 {
		return true
	}
	return llmErr.StatusCode >= 500 && llmErr.StatusCode < 600
}

// calculateDelay computes the backoff delay for a given retry attempt
func (r *RetryableChatCompleter) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.BackoffFactor, float64(attempt))

	if r.config.Jitter {
		delay *= 0.5 + secureRandomFloat64()
	}
	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}
	return time.Duration(delay)
}

// secureRandomFloat64 returns a random float64 in [0, 1). Falls back to 1
// when the system source fails, which keeps the delay within bounds.
func secureRandomFloat64() float64 {
	var bytes [8]byte
	if _, err := rand.Read(bytes[:]); err != nil {
		return 1.0
	}
	return float64(binary.BigEndian.Uint64(bytes[:])) / float64(^uint64(0))
}

var _ ChatCompleter = (*RetryableChatCompleter)(nil)
