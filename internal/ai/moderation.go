// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ModerationResult contains the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the prompt passes moderation
	Categories []string // flagged category names, empty when safe
}

// Moderator checks user prompts for policy violations before they are sent
// to a generation endpoint.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// --- OpenAI Moderation (free endpoint) ---

// openAIModerator uses the OpenAI Moderation API (POST /moderations).
type openAIModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newOpenAIModerator(apiKey, baseURL string) *openAIModerator {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &openAIModerator{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *openAIModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	var result openAIModResponse
	err := postJSON(ctx, m.client, "moderation", m.baseURL+"/moderations", bearer(m.apiKey),
		modRequest{Model: "omni-moderation-latest", Input: text}, &result)
	if err != nil {
		return nil, err
	}

	if len(result.Results) == 0 || !result.Results[0].Flagged {
		return &ModerationResult{Safe: true}, nil
	}

	// "hate/threatening" reads as "hate (threatening)".
	var flagged []string
	for cat, isFlagged := range result.Results[0].Categories {
		if !isFlagged {
			continue
		}
		display := cat
		if strings.Contains(cat, "/") {
			display = strings.ReplaceAll(cat, "/", " (") + ")"
		}
		flagged = append(flagged, strings.ReplaceAll(display, "_", " "))
	}
	sort.Strings(flagged)

	return &ModerationResult{Safe: false, Categories: flagged}, nil
}

// --- Mistral Moderation (paid) ---

// mistralModerator uses the Mistral Moderation API (POST /v1/moderations).
type mistralModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newMistralModerator(apiKey, baseURL string) *mistralModerator {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	// Provider configs carry the /v1 suffix; the moderation path adds its own.
	baseURL = strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/v1")
	return &mistralModerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *mistralModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	var result mistralModResponse
	err := postJSON(ctx, m.client, "mistral moderation", m.baseURL+"/v1/moderations", bearer(m.apiKey),
		modRequest{Model: "mistral-moderation-latest", Input: text}, &result)
	if err != nil {
		return nil, err
	}

	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	// Mistral has no top-level "flagged"; any flagged category counts.
	var flagged []string
	for cat, isFlagged := range result.Results[0].Categories {
		if isFlagged {
			flagged = append(flagged, strings.ReplaceAll(cat, "_", " "))
		}
	}
	sort.Strings(flagged)

	return &ModerationResult{Safe: len(flagged) == 0, Categories: flagged}, nil
}

// --- Fallback ---

// fallbackModerator asks primary first and switches to secondary when the
// primary rejects its credentials (e.g. project-scoped OpenAI keys without
// moderation access).
type fallbackModerator struct {
	primary   Moderator
	secondary Moderator
}

func newFallbackModerator(primary, secondary Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, secondary: secondary}
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	res, err := m.primary.CheckSafety(ctx, text)
	if err == nil || !isAuthError(err) {
		return res, err
	}
	slog.Warn("primary moderator rejected credentials, using fallback", "error", err)
	return m.secondary.CheckSafety(ctx, text)
}

// --- Request/Response types ---

type modRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIModResponse struct {
	Results []openAIModResult `json:"results"`
}

type openAIModResult struct {
	Flagged    bool            `json:"flagged"`
	Categories map[string]bool `json:"categories"`
}

type mistralModResponse struct {
	Results []mistralModResult `json:"results"`
}

type mistralModResult struct {
	Categories map[string]bool `json:"categories"`
}
