// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import "context"

// mistralProvider wraps the OpenAI-compatible Mistral API and adds
// per-call model selection.
type mistralProvider struct {
	*chatProvider
}

// newMistral creates a new Mistral provider.
func newMistral(cfg ProviderConfig) *mistralProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	return &mistralProvider{newChatCompletions("mistral", cfg)}
}

// GenerateWithModel sends a chat completion request using a specific model.
// If model is empty, the provider's default model is used.
func (p *mistralProvider) GenerateWithModel(ctx context.Context, model, systemPrompt, userPrompt string, opts Options) (string, error) {
	if model == "" {
		model = p.config.Model
	}
	return p.complete(ctx, model, systemPrompt, userPrompt, opts)
}
