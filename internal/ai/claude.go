// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	// claudeDefaultMaxTokens is sent when the caller leaves Options.MaxTokens
	// unset; the Messages API rejects requests without max_tokens.
	claudeDefaultMaxTokens = 4096
	claudeAPIVersion       = "2023-06-01"
)

// claudeProvider implements the Provider interface using the Anthropic
// Messages API (POST /v1/messages).
type claudeProvider struct {
	config ProviderConfig
	client *http.Client
}

// newClaude creates a new Anthropic Claude provider.
func newClaude(cfg ProviderConfig) *claudeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &claudeProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *claudeProvider) Name() string { return "claude" }

// Generate sends a single-turn message and returns the first text block.
func (p *claudeProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = claudeDefaultMaxTokens
	}
	temp := opts.Temperature
	body := claudeRequest{
		Model:       p.config.Model,
		MaxTokens:   maxTokens,
		Temperature: &temp,
		System:      systemPrompt,
		Messages:    []claudeMessage{{Role: "user", Content: userPrompt}},
	}
	headers := map[string]string{
		"x-api-key":         p.config.APIKey,
		"anthropic-version": claudeAPIVersion,
	}

	var result claudeResponse
	if err := postJSON(ctx, p.client, "claude", p.config.BaseURL+"/v1/messages", headers, body, &result); err != nil {
		return "", err
	}
	for _, block := range result.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errors.New("claude: no text content in response")
}

// --- Anthropic Messages API types ---

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature *float64        `json:"temperature,omitempty"`
	System      string          `json:"system,omitempty"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
}
