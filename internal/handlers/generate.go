// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"deathnote/internal/generator"
	"deathnote/internal/markdown"
	"deathnote/internal/middleware"
)

// Wire values of the "source" field in a generate response.
const (
	sourceProvider = "openai-sdk"
	sourceFallback = "fallback"
)

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Error   string `json:"error,omitempty"`
}

type contentResponse struct {
	Content string `json:"content"`
}

// Generate drafts an end-of-life document for the prompt. Provider failures
// are not errors here: the response carries fallback content and a warning
// in "error".
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if msg := validatePrompt(prompt); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	name := middleware.IdentityFromCtx(r.Context()).DisplayName()
	res, err := a.gen.Generate(r.Context(), generator.Request{Prompt: prompt, UserName: name})
	if err != nil {
		if errors.Is(err, generator.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Prompt is required")
			return
		}
		slog.Error("generate failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		writeError(w, http.StatusInternalServerError, "Failed to generate content")
		return
	}

	source := sourceProvider
	if res.Source == generator.SourceFallback {
		source = sourceFallback
	}
	writeJSON(w, http.StatusOK, generateResponse{Content: res.Content, Source: source, Error: res.Warning})
}

// draftLetterMarkdown is the simulated draft letter; %s is the prompt.
const draftLetterMarkdown = `# My Final Message

Dear loved ones,

%s

I want you to know that you've made my life extraordinary. The memories we've created together are the greatest treasure I could ever hope for. Please take care of each other and remember to live fully, love deeply, and laugh often.

With all my love,
[Your Name]
`

// Draft returns a simulated draft letter built around the prompt, rendered
// to HTML. No AI provider is called.
func (a *API) Draft(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if msg := validatePrompt(prompt); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	content, err := markdown.ToHTML(fmt.Sprintf(draftLetterMarkdown, prompt))
	if err != nil {
		slog.Error("render draft failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	name := middleware.IdentityFromCtx(r.Context()).DisplayName()
	writeJSON(w, http.StatusOK, contentResponse{Content: generator.SubstituteName(content, name)})
}

type extractRequest struct {
	URL string `json:"url"`
}

// extractedMarkdown is the simulated extraction result; %s is the URL.
const extractedMarkdown = `# Content from %s

This is simulated content that would be extracted from the provided URL.

## Sample Article Title

Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nullam eget magna auctor,
feugiat nisl eget, ultricies nunc. Nulla facilisi. Sed euismod, nunc ac ultricies
tincidunt, nisl nunc tincidunt nunc, eget aliquam nunc nunc eget magna.

### Important Points

- Point one about the article
- Point two about the article
- Point three about the article

Thank you for reading.
`

// Extract returns simulated article content for a URL, rendered to HTML.
// The URL is validated but never fetched.
func (a *API) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if msg := validateURL(req.URL); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	content, err := markdown.ToHTML(fmt.Sprintf(extractedMarkdown, strings.TrimSpace(req.URL)))
	if err != nil {
		slog.Error("render extraction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{Content: content})
}
