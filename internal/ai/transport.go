// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	// maxResponseBytes caps how much of a provider response is read.
	maxResponseBytes = 4 << 20
	// maxErrorBody caps the response text quoted in a statusError.
	maxErrorBody = 512
)

// statusError is returned when a provider or moderation endpoint answers
// with a non-200 status.
type statusError struct {
	label  string
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.label, e.status, e.body)
}

// isAuthError reports whether err is a 401/403 from an upstream endpoint.
func isAuthError(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return false
	}
	return se.status == http.StatusUnauthorized || se.status == http.StatusForbidden
}

// postJSON sends body as JSON to url and decodes a 200 answer into out.
// label prefixes every error so failures name the upstream service.
func postJSON(ctx context.Context, client *http.Client, label, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", label, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s request: %w", label, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s http: %w", label, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s read body: %w", label, err)
	}

	if resp.StatusCode != http.StatusOK {
		text := string(respBody)
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody] + "..."
		}
		return &statusError{label: label, status: resp.StatusCode, body: text}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s unmarshal: %w", label, err)
	}
	return nil
}

// bearer returns the Authorization header for an API key.
func bearer(apiKey string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + apiKey}
}
