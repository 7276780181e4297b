// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestPostJSON_Headers(t *testing.T) {
	srv, c := capturingServer(t, http.StatusOK, []byte(`{"ok":true}`))
	defer srv.Close()

	var out struct{ OK bool }
	err := postJSON(context.Background(), http.DefaultClient, "svc", srv.URL+"/x",
		map[string]string{"X-Extra": "1"}, map[string]string{"a": "b"}, &out)
	if err != nil {
		t.Fatalf("postJSON: %v", err)
	}
	if !out.OK {
		t.Error("response not decoded")
	}
	if c.headers.Get("Content-Type") != "application/json" || c.headers.Get("X-Extra") != "1" {
		t.Errorf("headers: got %v", c.headers)
	}
	if c.body["a"] != "b" {
		t.Errorf("body: got %v", c.body)
	}
}

func TestPostJSON_StatusError(t *testing.T) {
	long := strings.Repeat("x", maxErrorBody*2)
	srv := newTestServer(t, http.StatusUnauthorized, []byte(long))
	defer srv.Close()

	var out map[string]any
	err := postJSON(context.Background(), http.DefaultClient, "svc", srv.URL, bearer("k"), struct{}{}, &out)

	var se *statusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *statusError, got %T: %v", err, err)
	}
	if se.status != http.StatusUnauthorized || !isAuthError(err) {
		t.Errorf("status: got %d", se.status)
	}
	if len(se.body) != maxErrorBody+3 || !strings.HasSuffix(se.body, "...") {
		t.Errorf("body should be truncated, got %d bytes", len(se.body))
	}
	if !strings.HasPrefix(err.Error(), "svc API error (status 401)") {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestPostJSON_Unmarshalable(t *testing.T) {
	var out map[string]any
	err := postJSON(context.Background(), http.DefaultClient, "svc", "http://127.0.0.1:1", nil, make(chan int), &out)
	if err == nil || !strings.HasPrefix(err.Error(), "svc marshal") {
		t.Errorf("expected marshal error, got %v", err)
	}
}

func TestProviderAuthErrorIsTyped(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, []byte(`{"error":"bad key"}`))
	defer srv.Close()

	_, err := newDeepSeek(ProviderConfig{APIKey: "bad", BaseURL: srv.URL}).Generate(context.Background(), "", "usr", Options{})
	if !isAuthError(err) {
		t.Errorf("expected an auth error, got %v", err)
	}
}
