// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"deathnote/internal/ai"
)

// stubProvider records calls and returns a canned response.
type stubProvider struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	system   string
	user     string
	opts     ai.Options
}

func (p *stubProvider) Generate(_ context.Context, systemPrompt, userPrompt string, opts ai.Options) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.system = systemPrompt
	p.user = userPrompt
	p.opts = opts
	return p.response, p.err
}

type stubModerator struct {
	result *ai.ModerationResult
	err    error
}

func (m *stubModerator) CheckPrompt(context.Context, string) (*ai.ModerationResult, error) {
	return m.result, m.err
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	p := &stubProvider{response: "<h1>x</h1>"}
	svc := NewService(p, nil, 0)

	for _, prompt := range []string{"", "   \n\t"} {
		_, err := svc.Generate(context.Background(), Request{Prompt: prompt})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Generate(%q): got %v, want ErrInvalidArgument", prompt, err)
		}
	}
	if p.calls != 0 {
		t.Errorf("provider called %d times for invalid prompts", p.calls)
	}
}

func TestGenerate_ProviderSuccess(t *testing.T) {
	p := &stubProvider{response: "```html\n<h2>Goodbye</h2>\n<p>From [Your Name]</p>\n```"}
	svc := NewService(p, nil, 0)

	res, err := svc.Generate(context.Background(), Request{Prompt: "write a goodbye template", UserName: "Ana Pop"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Source != SourceProvider {
		t.Errorf("Source: got %q, want provider", res.Source)
	}
	if res.Warning != "" {
		t.Errorf("Warning: got %q, want empty", res.Warning)
	}
	want := "<h1>Goodbye</h1>\n<p>From Ana Pop</p>"
	if res.Content != want {
		t.Errorf("Content: got %q, want %q", res.Content, want)
	}

	if p.system != "" {
		t.Errorf("system prompt should be empty, got %q", p.system)
	}
	if p.user != BuildPrompt("write a goodbye template", true) {
		t.Error("user prompt should be the template instruction")
	}
	if p.opts.MaxTokens != DefaultMaxTokens || p.opts.Temperature != 0.7 {
		t.Errorf("opts: got %+v", p.opts)
	}
}

func TestGenerate_DirectOptions(t *testing.T) {
	p := &stubProvider{response: "<h1>Answer</h1>"}
	svc := NewService(p, nil, 1500)

	if _, err := svc.Generate(context.Background(), Request{Prompt: "how do I plan a funeral"}); err != nil {
		t.Fatal(err)
	}
	if p.opts.MaxTokens != 1500 || p.opts.Temperature != 0.5 {
		t.Errorf("opts: got %+v, want 1500/0.5", p.opts)
	}
}

func TestGenerate_WrapsPlainText(t *testing.T) {
	long := strings.Repeat("word ", 20)

	t.Run("direct", func(t *testing.T) {
		svc := NewService(&stubProvider{response: long}, nil, 0)
		res, _ := svc.Generate(context.Background(), Request{Prompt: "help"})
		want := "<h1>Response</h1><p>" + strings.TrimSpace(long) + "</p>"
		if res.Content != want {
			t.Errorf("got %q, want %q", res.Content, want)
		}
	})

	t.Run("template uses escaped prompt", func(t *testing.T) {
		svc := NewService(&stubProvider{response: long}, nil, 0)
		res, _ := svc.Generate(context.Background(), Request{Prompt: "example <b>letter</b>"})
		if !strings.HasPrefix(res.Content, "<h1>example &lt;b&gt;letter&lt;/b&gt;</h1><p>") {
			t.Errorf("got %q", res.Content)
		}
	})
}

func TestGenerate_StripsColonlessPreamble(t *testing.T) {
	p := &stubProvider{response: "Here's the content\n<h1>Funeral Wishes</h1>\n<p>x</p>"}
	svc := NewService(p, nil, 0)

	res, err := svc.Generate(context.Background(), Request{Prompt: "help"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Source != SourceProvider {
		t.Errorf("Source: got %q, want provider", res.Source)
	}
	if want := "<h1>Funeral Wishes</h1>\n<p>x</p>"; res.Content != want {
		t.Errorf("Content: got %q, want %q", res.Content, want)
	}
}

func TestGenerate_ProviderFailureFallsBack(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		userName  string
		wantStart string
		wantText  string
	}{
		{"direct goodbye", "goodbye", "", "<h1>Writing a Meaningful Goodbye Letter</h1>", ""},
		{"template goodbye", "goodbye template", "", "<h1>My Farewell Note</h1>", "[Your Name]"},
		{"pets with name", "Give me a template for handling my pets", "Ana Pop", "<h1>Care Instructions for My Beloved Pets</h1>", "Prepared by: Ana Pop"},
		{"pets without name", "Give me a template for handling my pets", "", "<h1>Care Instructions for My Beloved Pets</h1>", "Prepared by: [Your Name]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubProvider{err: errors.New("timeout")}, nil, 0)
			res, err := svc.Generate(context.Background(), Request{Prompt: tt.prompt, UserName: tt.userName})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if res.Source != SourceFallback {
				t.Errorf("Source: got %q, want fallback", res.Source)
			}
			if res.Warning != warnProviderFailed {
				t.Errorf("Warning: got %q", res.Warning)
			}
			if !strings.HasPrefix(res.Content, tt.wantStart) {
				t.Errorf("Content starts with %q, want %q", res.Content[:min(len(res.Content), 50)], tt.wantStart)
			}
			if tt.wantText != "" && !strings.Contains(res.Content, tt.wantText) {
				t.Errorf("Content missing %q", tt.wantText)
			}
		})
	}
}

func TestGenerate_EmptyProviderOutputFallsBack(t *testing.T) {
	for _, raw := range []string{"", "  \n ", "```html\n```", "<!-- nothing -->"} {
		svc := NewService(&stubProvider{response: raw}, nil, 0)
		res, err := svc.Generate(context.Background(), Request{Prompt: "goodbye"})
		if err != nil {
			t.Fatalf("Generate(%q): %v", raw, err)
		}
		if res.Source != SourceFallback {
			t.Errorf("raw %q: Source got %q, want fallback", raw, res.Source)
		}
	}
}

func TestGenerate_NilProviderFallsBack(t *testing.T) {
	svc := NewService(nil, nil, 0)
	res, err := svc.Generate(context.Background(), Request{Prompt: "goodbye"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Source != SourceFallback {
		t.Errorf("Source: got %q", res.Source)
	}
}

func TestGenerate_Moderation(t *testing.T) {
	t.Run("flagged prompt skips provider", func(t *testing.T) {
		p := &stubProvider{response: "<h1>x</h1>"}
		m := &stubModerator{result: &ai.ModerationResult{Safe: false, Categories: []string{"hate", "violence"}}}
		svc := NewService(p, m, 0)

		res, err := svc.Generate(context.Background(), Request{Prompt: "goodbye"})
		if err != nil {
			t.Fatal(err)
		}
		if p.calls != 0 {
			t.Error("provider must not be called for a flagged prompt")
		}
		if res.Source != SourceFallback {
			t.Errorf("Source: got %q", res.Source)
		}
		if res.Warning != "Prompt flagged for: hate, violence. Using fallback content." {
			t.Errorf("Warning: got %q", res.Warning)
		}
	})

	t.Run("moderation error fails open", func(t *testing.T) {
		p := &stubProvider{response: "<h1>x</h1>"}
		svc := NewService(p, &stubModerator{err: errors.New("down")}, 0)

		res, err := svc.Generate(context.Background(), Request{Prompt: "goodbye"})
		if err != nil {
			t.Fatal(err)
		}
		if res.Source != SourceProvider || p.calls != 1 {
			t.Errorf("expected provider result, got %+v (calls=%d)", res, p.calls)
		}
	})
}

func TestGenerate_ContentAlwaysHTML(t *testing.T) {
	responses := []string{"<p>ok</p>", "plain words that go on and on well past the sixty character title limit", "Short Title\nbody", ""}
	prompts := []string{"goodbye", "template for pets", "x", "example"}
	for _, r := range responses {
		for _, prompt := range prompts {
			svc := NewService(&stubProvider{response: r}, nil, 0)
			res, err := svc.Generate(context.Background(), Request{Prompt: prompt})
			if err != nil {
				t.Fatalf("Generate(%q, %q): %v", prompt, r, err)
			}
			if res.Content == "" || !strings.HasPrefix(res.Content, "<") {
				t.Errorf("Generate(%q, %q): content %q is not HTML", prompt, r, res.Content)
			}
		}
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	svc := NewService(&stubProvider{response: "<h1>T</h1><p>[Your Name]</p>"}, nil, 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "User"
			if i%2 == 0 {
				name = "Other"
			}
			res, err := svc.Generate(context.Background(), Request{Prompt: "goodbye", UserName: name})
			if err != nil {
				t.Errorf("Generate: %v", err)
				return
			}
			if !strings.Contains(res.Content, name) {
				t.Errorf("content %q missing %q", res.Content, name)
			}
		}(i)
	}
	wg.Wait()
}
