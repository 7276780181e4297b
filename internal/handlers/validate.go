package handlers

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Validation limits for request fields.
const (
	maxPromptLen = 4_000
	maxURLLen    = 2_048
)

// validatePrompt checks a generation prompt and returns the first error found.
// The prompt is expected to be trimmed.
func validatePrompt(prompt string) string {
	if prompt == "" {
		return "Prompt is required"
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return "Prompt is too long (max 4,000 characters)"
	}
	return ""
}

// validateURL checks an extraction URL. Only absolute http and https URLs
// are accepted.
func validateURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "URL is required"
	}
	if len(raw) > maxURLLen {
		return "URL is too long (max 2,048 characters)"
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "URL is invalid"
	}
	return ""
}
