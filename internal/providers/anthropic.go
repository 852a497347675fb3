package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"ezra/internal/config"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

func NewAnthropicProvider(cfg config.Config) *AnthropicProvider {
	baseURL := strings.TrimSpace(os.Getenv("EZRA_ANTHROPIC_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	timeout := cfg.LLMTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AnthropicProvider{
		apiKey:    cfg.AnthropicAPIKey,
		model:     cfg.AnthropicModel,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxTokens: cfg.AnthropicMaxTok,
		client:    &http.Client{Timeout: timeout},
	}
}

func (p *AnthropicProvider) info() ProviderInfo {
	return ProviderInfo{Name: "anthropic", Model: p.model}
}

func (p *AnthropicProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	if p.apiKey == "" {
		return GenerateResponse{}, p.info(), ErrMissingAPIKey
	}

	payload, _ := json.Marshal(map[string]any{
		"model":      p.model,
		"max_tokens": p.maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return GenerateResponse{}, p.info(), fmt.Errorf("build anthropic request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
			return GenerateResponse{}, p.info(), fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return GenerateResponse{}, p.info(), fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		return GenerateResponse{}, p.info(), statusError(resp.StatusCode, body)
	}

	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return GenerateResponse{}, p.info(), fmt.Errorf("decode anthropic response: %w", err)
	}
	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return GenerateResponse{}, p.info(), ErrEmptyResponse
	}
	return GenerateResponse{Text: text.String()}, p.info(), nil
}

func statusError(status int, body []byte) error {
	msg := upstreamMessage(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w (%d): %s", ErrUnauthorized, status, msg)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w (%d): %s", ErrRateLimited, status, msg)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w (%d): %s", ErrBadRequest, status, msg)
	default:
		return fmt.Errorf("%w (%d): %s", ErrServerError, status, msg)
	}
}

func upstreamMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
