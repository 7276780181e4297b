// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"
)

func TestOpenAIModerator_Flagged(t *testing.T) {
	body := []byte(`{"results":[{"flagged":true,"categories":{"violence":true,"hate/threatening":true,"self_harm":false}}]}`)
	srv, c := capturingServer(t, http.StatusOK, body)
	defer srv.Close()

	m := newOpenAIModerator("k", srv.URL)
	res, err := m.CheckSafety(context.Background(), "some prompt")
	if err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if res.Safe {
		t.Error("expected unsafe result")
	}
	want := []string{"hate (threatening)", "violence"}
	if !reflect.DeepEqual(res.Categories, want) {
		t.Errorf("Categories: got %v, want %v", res.Categories, want)
	}
	if c.path != "/moderations" {
		t.Errorf("path: got %q", c.path)
	}
	if c.body["model"] != "omni-moderation-latest" {
		t.Errorf("model: got %v", c.body["model"])
	}
}

func TestOpenAIModerator_Safe(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"results":[{"flagged":false,"categories":{}}]}`))
	defer srv.Close()

	res, err := newOpenAIModerator("k", srv.URL).CheckSafety(context.Background(), "hello")
	if err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if !res.Safe {
		t.Error("expected safe result")
	}
}

func TestMistralModerator_StripsV1(t *testing.T) {
	body := []byte(`{"results":[{"categories":{"self_harm":true,"pii":false}}]}`)
	srv, c := capturingServer(t, http.StatusOK, body)
	defer srv.Close()

	res, err := newMistralModerator("k", srv.URL+"/v1").CheckSafety(context.Background(), "x")
	if err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if c.path != "/v1/moderations" {
		t.Errorf("path: got %q, want /v1/moderations", c.path)
	}
	if res.Safe || len(res.Categories) != 1 || res.Categories[0] != "self harm" {
		t.Errorf("result: got %+v", res)
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&statusError{status: http.StatusUnauthorized}, true},
		{&statusError{status: http.StatusForbidden}, true},
		{&statusError{status: http.StatusInternalServerError}, false},
		{fmt.Errorf("wrapped: %w", &statusError{status: http.StatusUnauthorized}), true},
		{errors.New("network down"), false},
	}
	for _, tt := range tests {
		if got := isAuthError(tt.err); got != tt.want {
			t.Errorf("isAuthError(%v): got %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestFallbackModerator(t *testing.T) {
	secondary := newTestServer(t, http.StatusOK, []byte(`{"results":[{"categories":{"violence":true}}]}`))
	defer secondary.Close()

	t.Run("switches on auth error", func(t *testing.T) {
		primary := newTestServer(t, http.StatusUnauthorized, []byte(`{"error":"no access"}`))
		defer primary.Close()

		m := newFallbackModerator(newOpenAIModerator("k", primary.URL), newMistralModerator("k", secondary.URL))
		res, err := m.CheckSafety(context.Background(), "x")
		if err != nil {
			t.Fatalf("CheckSafety: %v", err)
		}
		if res.Safe {
			t.Error("expected secondary's unsafe verdict")
		}
	})

	t.Run("returns other errors unchanged", func(t *testing.T) {
		primary := newTestServer(t, http.StatusInternalServerError, []byte(`boom`))
		defer primary.Close()

		m := newFallbackModerator(newOpenAIModerator("k", primary.URL), newMistralModerator("k", secondary.URL))
		if _, err := m.CheckSafety(context.Background(), "x"); err == nil {
			t.Fatal("expected error from primary")
		}
	})
}
