package providers

import (
	"context"
	"fmt"
	"strings"

	"ezra/internal/config"
)

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

// LLMProvider wraps a single synchronous call to a text-generation API.
// No streaming, no internal retries.
type LLMProvider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error)
}

// New builds the configured provider. A missing credential for a real
// provider is a configuration error surfaced at startup, not at call time.
func New(cfg config.Config) (LLMProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "anthropic":
		p := NewAnthropicProvider(cfg)
		if p.apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return p, nil
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLMProvider)
	}
}
