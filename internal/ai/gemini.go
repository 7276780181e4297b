// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// geminiProvider implements the Provider interface using the Google
// Gemini REST API (POST /v1beta/models/{model}:generateContent).
type geminiProvider struct {
	config ProviderConfig
	client *http.Client
}

// newGemini creates a new Google Gemini provider.
func newGemini(cfg ProviderConfig) *geminiProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &geminiProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *geminiProvider) Name() string { return "gemini" }

// Generate sends a generateContent request and returns the first
// candidate's text.
func (p *geminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	temp := opts.Temperature
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: userPrompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     &temp,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	if systemPrompt != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}

	endpoint := p.config.BaseURL + "/v1beta/models/" + url.PathEscape(p.config.Model) + ":generateContent"
	headers := map[string]string{"x-goog-api-key": p.config.APIKey}

	var result geminiResponse
	if err := postJSON(ctx, p.client, "gemini", endpoint, headers, body, &result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 {
		return "", errors.New("gemini: no candidates returned")
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", errors.New("gemini: no text in response")
}

// --- Gemini API types ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}
