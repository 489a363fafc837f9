// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Engine setup, dial flag parsing, and display helpers
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/harper/dialrag/internal/config"
	"github.com/harper/dialrag/internal/core"
	"github.com/harper/dialrag/internal/llm"
	"github.com/harper/dialrag/internal/models"
)

// setupEngine loads configuration, builds the OpenAI-backed engine, and
// loads any persisted index and steering vectors.
func setupEngine() (*core.Engine, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	clientCfg := llm.DefaultConfig(cfg.OpenAIKey)
	clientCfg.Timeout = cfg.Timeout
	clientCfg.MaxRetries = cfg.MaxRetries
	clientCfg.RetryDelay = cfg.RetryDelay
	client, err := llm.NewOpenAIClientWithConfig(clientCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	engine := core.NewEngine(client, cfg)
	if err := engine.LoadPersisted(); err != nil {
		return nil, nil, err
	}
	return engine, cfg, nil
}

// parseDials parses key=value dial flags like "love=0.9".
func parseDials(specs []string) (models.DialVector, error) {
	dials := models.DialVector{}
	for _, spec := range specs {
		key, val, found := strings.Cut(spec, "=")
		if !found {
			return nil, fmt.Errorf("invalid dial %q, expected name=value", spec)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dial value %q: %w", spec, err)
		}
		dials[strings.ToLower(strings.TrimSpace(key))] = f
	}
	return dials, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
