// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// chatProvider speaks the OpenAI chat completions wire format
// (POST {base}/chat/completions). OpenAI, DeepSeek and Mistral all use it;
// label names the service in errors.
type chatProvider struct {
	label  string
	config ProviderConfig
	client *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *chatProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return newChatCompletions("openai", cfg)
}

// newChatCompletions builds a client for any OpenAI-compatible endpoint.
func newChatCompletions(label string, cfg ProviderConfig) *chatProvider {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &chatProvider{
		label:  label,
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *chatProvider) Name() string { return p.label }

// Generate sends a chat completion request with the configured model.
func (p *chatProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	return p.complete(ctx, p.config.Model, systemPrompt, userPrompt, opts)
}

// complete sends one chat completion and returns the first choice's text.
// The system message is omitted when systemPrompt is empty.
func (p *chatProvider) complete(ctx context.Context, model, systemPrompt, userPrompt string, opts Options) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	temp := opts.Temperature
	body := chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: &temp,
	}

	var result chatResponse
	if err := postJSON(ctx, p.client, p.label, p.config.BaseURL+"/chat/completions", bearer(p.config.APIKey), body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", p.label)
	}
	return result.Choices[0].Message.Content, nil
}

// --- Chat completions request/response types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
