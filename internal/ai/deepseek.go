// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

const (
	defaultDeepSeekBaseURL = "https://api.deepseek.com"
	defaultDeepSeekModel   = "deepseek-chat"
)

// newDeepSeek creates the default drafting provider. DeepSeek's API is
// OpenAI-compatible.
func newDeepSeek(cfg ProviderConfig) *chatProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultDeepSeekBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultDeepSeekModel
	}
	return newChatCompletions("deepseek", cfg)
}
