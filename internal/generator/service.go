// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"deathnote/internal/ai"
)

// DefaultMaxTokens caps the provider's output when no limit is configured.
const DefaultMaxTokens = 2000

const (
	warnProviderFailed = "AI provider call failed. Using fallback content."
	warnFlaggedFormat  = "Prompt flagged for: %s. Using fallback content."
)

// Provider is the generative-text backend. *ai.Registry satisfies it.
type Provider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts ai.Options) (string, error)
}

// Moderator screens prompts before they reach the provider. *ai.Registry
// satisfies it.
type Moderator interface {
	CheckPrompt(ctx context.Context, prompt string) (*ai.ModerationResult, error)
}

// Service generates documents. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	provider  Provider
	moderator Moderator
	maxTokens int
}

// NewService creates a generation service. moderator may be nil, and a
// non-positive maxTokens selects DefaultMaxTokens.
func NewService(provider Provider, moderator Moderator, maxTokens int) *Service {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Service{provider: provider, moderator: moderator, maxTokens: maxTokens}
}

// Generate produces a document for req. It only fails for an empty prompt
// (ErrInvalidArgument) or when fallback rendering breaks (ErrInternal); every
// provider problem degrades to fallback content with a warning.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return Result{}, ErrInvalidArgument
	}
	isTemplate := IsTemplateRequest(prompt)

	if flagged := s.flaggedCategories(ctx, prompt); flagged != nil {
		slog.Info("prompt flagged by moderation", "categories", flagged)
		warning := fmt.Sprintf(warnFlaggedFormat, strings.Join(flagged, ", "))
		return s.fallback(prompt, isTemplate, req.UserName, warning)
	}

	content, err := s.fromProvider(ctx, prompt, isTemplate, req.UserName)
	if err != nil {
		slog.Error("content generation failed", "error", err, "template", isTemplate)
		return s.fallback(prompt, isTemplate, req.UserName, warnProviderFailed)
	}
	return Result{Content: content, Source: SourceProvider}, nil
}

// flaggedCategories returns the moderation categories that block prompt, or
// nil when the prompt may proceed. Moderation errors let the prompt through.
func (s *Service) flaggedCategories(ctx context.Context, prompt string) []string {
	if s.moderator == nil {
		return nil
	}
	res, err := s.moderator.CheckPrompt(ctx, prompt)
	if err != nil {
		slog.Warn("moderation check failed, continuing", "error", err)
		return nil
	}
	if res == nil || res.Safe {
		return nil
	}
	if len(res.Categories) == 0 {
		return []string{"policy violation"}
	}
	return res.Categories
}

func (s *Service) fromProvider(ctx context.Context, prompt string, isTemplate bool, name string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("%w: no provider configured", ErrProviderUnavailable)
	}

	raw, err := s.provider.Generate(ctx, "", BuildPrompt(prompt, isTemplate), ai.Options{
		MaxTokens:   s.maxTokens,
		Temperature: Temperature(isTemplate),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	content := SubstituteName(Clean(raw), name)
	if content == "" {
		return "", fmt.Errorf("%w: empty response", ErrProviderUnavailable)
	}

	if !strings.HasPrefix(content, "<") {
		title := "Response"
		if isTemplate {
			title = html.EscapeString(prompt)
		}
		content = "<h1>" + title + "</h1><p>" + content + "</p>"
	}
	return content, nil
}

func (s *Service) fallback(prompt string, isTemplate bool, name, warning string) (Result, error) {
	content, err := Fallback(prompt, isTemplate, name)
	if err != nil {
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return Result{}, err
	}
	return Result{Content: content, Source: SourceFallback, Warning: warning}, nil
}
