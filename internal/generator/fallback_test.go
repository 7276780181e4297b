// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"strings"
	"testing"
)

func TestIsTemplateRequest(t *testing.T) {
	tests := []struct {
		prompt string
		want   bool
	}{
		{"Give me a TEMPLATE for my pets", true},
		{"show an example goodbye", true},
		{"what format should my will use", true},
		{"goodbye", false},
		{"how do I split my belongings", false},
	}
	for _, tt := range tests {
		if got := IsTemplateRequest(tt.prompt); got != tt.want {
			t.Errorf("IsTemplateRequest(%q): got %v, want %v", tt.prompt, got, tt.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	tmpl := BuildPrompt("pets", true)
	if !strings.Contains(tmpl, `based on this topic: "pets"`) {
		t.Errorf("template prompt missing topic: %q", tmpl)
	}
	if !strings.Contains(tmpl, "Include placeholders") {
		t.Error("template prompt should ask for placeholders")
	}

	direct := BuildPrompt("pets", false)
	if !strings.HasPrefix(direct, `Based on this request: "pets"`) {
		t.Errorf("direct prompt prefix: %q", direct)
	}
	if !strings.Contains(direct, "Avoid template-like placeholders") {
		t.Error("direct prompt should discourage placeholders")
	}

	for _, p := range []string{tmpl, direct} {
		for _, tag := range []string{"<h1>", "<h3>", "<p>", "<ul>", "<li>", "<strong>"} {
			if !strings.Contains(p, tag) {
				t.Errorf("prompt does not mention %s", tag)
			}
		}
		if !strings.Contains(p, "ONLY contain the HTML content") {
			t.Error("prompt should require HTML-only output")
		}
	}
}

func TestTemperature(t *testing.T) {
	if Temperature(true) != 0.7 || Temperature(false) != 0.5 {
		t.Errorf("Temperature: got %v/%v, want 0.7/0.5", Temperature(true), Temperature(false))
	}
}

func TestTemplatesCatalog(t *testing.T) {
	entries := Templates()
	if len(entries) != 9 {
		t.Fatalf("catalog size: got %d, want 9", len(entries))
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Body, "<h1>") {
			t.Errorf("%s: body should start with <h1>", e.ID)
		}
		if !strings.Contains(e.Body, Placeholder) {
			t.Errorf("%s: body should sign off with %s", e.ID, Placeholder)
		}
	}

	entries[0].Keywords[0] = "mutated"
	if again := Templates(); again[0].Keywords[0] != "goodbye" {
		t.Error("Templates must return a copy")
	}
}

func TestMatchTemplate(t *testing.T) {
	tests := []struct {
		prompt string
		wantID string
	}{
		{"a farewell template", "farewell-note"},
		{"Template for my PASSWORDS", "digital-accounts"},
		{"template for handling my pets", "pet-care"},
		{"bank template", "financial-affairs"},
		{"Instagram example", "social-media"},
		{"template for my stuff", "personal-belongings"},
		{"health format", "medical-care"},
		{"burial template", "funeral-wishes"},
		{"example executor letter", "legal-affairs"},
		// goodbye wins over digital because its group comes first.
		{"digital goodbye template", "farewell-note"},
	}
	for _, tt := range tests {
		e, ok := MatchTemplate(tt.prompt)
		if !ok {
			t.Errorf("MatchTemplate(%q): no match", tt.prompt)
			continue
		}
		if e.ID != tt.wantID {
			t.Errorf("MatchTemplate(%q): got %s, want %s", tt.prompt, e.ID, tt.wantID)
		}
	}

	if _, ok := MatchTemplate("a template for my garden"); ok {
		t.Error("unexpected match for unrelated prompt")
	}
}

func TestFallbackDirect(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"how should I distribute things", "<h1>Distribution of Personal Belongings</h1>"},
		{"goodbye", "<h1>Writing a Meaningful Goodbye Letter</h1>"},
		{"my passwords", "<h1>Managing Digital Assets and Passwords</h1>"},
		{"what about my garden", "<h1>Response to: what about my garden</h1>"},
	}
	for _, tt := range tests {
		got, err := Fallback(tt.prompt, false, "Ana")
		if err != nil {
			t.Fatalf("Fallback(%q): %v", tt.prompt, err)
		}
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("Fallback(%q): got prefix %q, want %q", tt.prompt, got[:min(len(got), 60)], tt.want)
		}
	}
}

func TestFallbackTemplate(t *testing.T) {
	t.Run("catalog entry with name", func(t *testing.T) {
		got, err := Fallback("Give me a template for handling my pets", true, "Ana Pop")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(got, "<h1>Care Instructions for My Beloved Pets</h1>") {
			t.Errorf("unexpected document: %q", got[:60])
		}
		if !strings.Contains(got, "Prepared by: Ana Pop") || strings.Contains(got, Placeholder) {
			t.Error("name should replace the placeholder")
		}
	})

	t.Run("catalog entry without name", func(t *testing.T) {
		got, _ := Fallback("Give me a template for handling my pets", true, "")
		if !strings.Contains(got, "Prepared by: [Your Name]") {
			t.Error("placeholder should remain when no name is given")
		}
	})

	t.Run("generic document escapes input", func(t *testing.T) {
		got, err := Fallback("template for <b>garden</b>", true, "")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(got, "<h1>Final Instructions: template for &lt;b&gt;garden&lt;/b&gt;</h1>") {
			t.Errorf("prompt not escaped: %q", got)
		}
		if !strings.HasSuffix(got, "<p>Sincerely,<br>[Your Name]</p>") {
			t.Errorf("missing placeholder sign-off: %q", got)
		}
	})
}
