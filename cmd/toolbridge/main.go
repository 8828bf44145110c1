package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arosling/go-toolbridge/pkg/factory"
	"github.com/arosling/go-toolbridge/pkg/llm"
	"github.com/arosling/go-toolbridge/pkg/toolcall"
	"github.com/arosling/go-toolbridge/pkg/tools"
)

const defaultTimeout = 2 * time.Minute

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if os.Getenv("TOOLBRIDGE_DEBUG") == "" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("toolbridge failed")
	}
}

func run(args []string) error {
	if len(args) < 2 || args[0] != "ask" {
		return fmt.Errorf("usage: toolbridge ask \"<question>\"")
	}
	query := strings.Join(args[1:], " ")

	// Optional .env; real environments set variables directly
	_ = godotenv.Load()

	config := llm.ConfigFromEnv()
	log.Info().Str("provider", config.Provider).Str("model", config.Model).Msg("provider selected")

	client, err := factory.New().CreateClient(config)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer func() { _ = client.Close() }()

	registry := toolcall.NewRegistry()
	if err := tools.RegisterTopSong(registry); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}

	tripper, err := toolcall.New(client, registry)
	if err != nil {
		return fmt.Errorf("build round tripper: %w", err)
	}

	timeout := defaultTimeout
	if config.Timeout > 0 {
		timeout = config.Timeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := tripper.Run(ctx, query)
	if err != nil {
		return fmt.Errorf("round trip: %w", err)
	}

	log.Debug().
		Str("tool", result.Invocation.ToolName).
		Interface("arguments", result.Invocation.Arguments).
		Msg("tool dispatched")
	if result.Reasoning != "" {
		log.Debug().Str("reasoning", result.Reasoning).Msg("model reasoning")
	}

	fmt.Println(result.FinalAnswer)
	return nil
}
