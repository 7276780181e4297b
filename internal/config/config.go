// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"deathnote/internal/ai"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Valkey (Redis-compatible). An empty host disables it and the
	// in-process rate limiter is used instead.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings
	AIProvider string // "deepseek", "openai", "gemini", "claude", "mistral"

	DeepSeekAPIKey  string
	DeepSeekModel   string
	DeepSeekBaseURL string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	ClaudeAPIKey  string
	ClaudeModel   string
	ClaudeBaseURL string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	MistralAPIKey  string
	MistralModel   string
	MistralBaseURL string

	// Generation limits
	GenerateMaxTokens  int
	RateLimitPerMinute int // requests per client per minute on /api/generate
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Malformed numbers are reported as
// errors rather than silently replaced.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider: envOrDefault("AI_PROVIDER", "deepseek"),

		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekModel:   envOrDefault("DEEPSEEK_MODEL", "deepseek-chat"),
		DeepSeekBaseURL: envOrDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		ClaudeAPIKey:  os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:   envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-6"),
		ClaudeBaseURL: envOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),

		MistralAPIKey:  os.Getenv("MISTRAL_API_KEY"),
		MistralModel:   envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
		MistralBaseURL: envOrDefault("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
	}

	var err error
	if cfg.GenerateMaxTokens, err = envInt("GENERATE_MAX_TOKENS", 2000); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = envInt("RATE_LIMIT_PER_MINUTE", 20); err != nil {
		return nil, err
	}

	if !ai.Supported(cfg.AIProvider) {
		return nil, fmt.Errorf("AI_PROVIDER %q is not supported (want one of %s)",
			cfg.AIProvider, strings.Join(ai.SupportedNames(), ", "))
	}

	return cfg, nil
}

// ProviderConfigs returns the per-provider settings in the shape the AI
// registry expects. Providers without an API key are included and skipped
// by the registry.
func (c *Config) ProviderConfigs() map[string]ai.ProviderConfig {
	return map[string]ai.ProviderConfig{
		"deepseek": {APIKey: c.DeepSeekAPIKey, Model: c.DeepSeekModel, BaseURL: c.DeepSeekBaseURL},
		"openai":   {APIKey: c.OpenAIAPIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL},
		"claude":   {APIKey: c.ClaudeAPIKey, Model: c.ClaudeModel, BaseURL: c.ClaudeBaseURL},
		"gemini":   {APIKey: c.GeminiAPIKey, Model: c.GeminiModel, BaseURL: c.GeminiBaseURL},
		"mistral":  {APIKey: c.MistralAPIKey, Model: c.MistralModel, BaseURL: c.MistralBaseURL},
	}
}

// ValkeyEnabled reports whether a Valkey server is configured.
func (c *Config) ValkeyEnabled() bool {
	return c.ValkeyHost != ""
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt reads a positive integer, returning fallback if unset or empty.
func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}
