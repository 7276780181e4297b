// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON endpoints of the DeathNote API:
// content generation, draft and extraction helpers, editor templates,
// trusted contacts and provider status.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"deathnote/internal/ai"
	"deathnote/internal/contacts"
	"deathnote/internal/generator"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 64 << 10

// Generator produces content for a prompt. *generator.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (generator.Result, error)
}

// ProviderStatus reports the configured AI providers. *ai.Registry satisfies it.
type ProviderStatus interface {
	ActiveName() string
	Available() []string
	Info() []ai.ProviderInfo
}

// API groups the HTTP handlers and their dependencies.
type API struct {
	gen       Generator
	providers ProviderStatus
	contacts  *contacts.Store
}

// New creates the API handlers.
func New(gen Generator, providers ProviderStatus, book *contacts.Store) *API {
	return &API{gen: gen, providers: providers, contacts: book}
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError sends {"error": msg} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into v exactly once. It reports false
// and writes a 400 response when the body is missing, too large or not
// valid JSON. The body is never re-read, so a failed decode cannot turn
// into a second parse error downstream.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Providers reports the active AI provider and all configured ones. With
// no configured providers every generation is served from fallback content.
func (a *API) Providers(w http.ResponseWriter, r *http.Request) {
	available := a.providers.Available()
	if available == nil {
		available = []string{}
	}
	info := a.providers.Info()
	if info == nil {
		info = []ai.ProviderInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active":    a.providers.ActiveName(),
		"available": available,
		"providers": info,
	})
}
