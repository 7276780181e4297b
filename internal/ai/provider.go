// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface over the generative-text providers
// DeathNote can draft documents with (DeepSeek, OpenAI, Claude, Gemini,
// Mistral). Each provider implements Provider, and the Registry selects the
// active one by name.
package ai

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Options carries per-call sampling parameters. A zero MaxTokens lets the
// provider apply its own default.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Provider is a generative-text backend.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the generated text.
	// systemPrompt may be empty, in which case only the user message is sent.
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)

	// Name returns the provider identifier (e.g., "deepseek", "gemini").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ProviderInfo describes a configured provider for status endpoints.
type ProviderInfo struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Model  string `json:"model,omitempty"`
	Active bool   `json:"active"`
}

// builder constructs one kind of provider.
type builder struct {
	label string
	build func(ProviderConfig) Provider
}

var builders = map[string]builder{
	"deepseek": {"DeepSeek", func(c ProviderConfig) Provider { return newDeepSeek(c) }},
	"openai":   {"OpenAI", func(c ProviderConfig) Provider { return newOpenAI(c) }},
	"claude":   {"Anthropic Claude", func(c ProviderConfig) Provider { return newClaude(c) }},
	"gemini":   {"Google Gemini", func(c ProviderConfig) Provider { return newGemini(c) }},
	"mistral":  {"Mistral", func(c ProviderConfig) Provider { return newMistral(c) }},
}

// Supported reports whether name is a provider this package can build.
func Supported(name string) bool {
	_, ok := builders[name]
	return ok
}

// SupportedNames returns every buildable provider name, sorted.
func SupportedNames() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry holds the configured providers and the name of the active one.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	models    map[string]string
	active    string
	moderator Moderator // nil when no moderation API key is configured
}

// NewRegistry builds a provider for every supported config that has an API
// key; the rest are skipped. active may name a provider that was skipped, in
// which case Generate fails until SetActive picks an available one.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		models:    make(map[string]string),
		active:    active,
		moderator: newModerator(configs),
	}
	for name, cfg := range configs {
		b, ok := builders[name]
		if !ok || cfg.APIKey == "" {
			continue
		}
		p := b.build(cfg)
		r.providers[name] = p
		r.models[name] = modelOf(p, cfg)
	}
	return r
}

// modelOf reports the model a built provider will call.
func modelOf(p Provider, cfg ProviderConfig) string {
	switch v := p.(type) {
	case *chatProvider:
		return v.config.Model
	case *mistralProvider:
		return v.config.Model
	}
	return cfg.Model
}

// newModerator prefers OpenAI's free moderation API and uses Mistral's when
// OpenAI is missing or rejects the key. It returns nil when neither has a key.
func newModerator(configs map[string]ProviderConfig) Moderator {
	openai, mistral := configs["openai"], configs["mistral"]
	switch {
	case openai.APIKey != "" && mistral.APIKey != "":
		return newFallbackModerator(
			newOpenAIModerator(openai.APIKey, openai.BaseURL),
			newMistralModerator(mistral.APIKey, mistral.BaseURL),
		)
	case openai.APIKey != "":
		return newOpenAIModerator(openai.APIKey, openai.BaseURL)
	case mistral.APIKey != "":
		return newMistralModerator(mistral.APIKey, mistral.BaseURL)
	}
	return nil
}

// Generate calls the active provider.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, systemPrompt, userPrompt, opts)
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime. It fails, leaving the
// active provider unchanged, if name has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Available returns the sorted names of all configured providers.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info describes every configured provider, sorted by name.
func (r *Registry) Info() []ProviderInfo {
	names := r.Available()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ProviderInfo, 0, len(names))
	for _, name := range names {
		label := name
		if b, ok := builders[name]; ok {
			label = b.label
		}
		out = append(out, ProviderInfo{
			Name:   name,
			Label:  label,
			Model:  r.models[name],
			Active: name == r.active,
		})
	}
	return out
}

// Register adds or replaces a provider under name.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
	delete(r.models, name)
}

// CheckPrompt screens prompt with the moderation API. Without a moderator
// every prompt is reported safe.
func (r *Registry) CheckPrompt(ctx context.Context, prompt string) (*ModerationResult, error) {
	if r.moderator == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return r.moderator.CheckSafety(ctx, prompt)
}

// HasProvider reports whether name is configured.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}
