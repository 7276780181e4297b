// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"html"
	"regexp"
	"strings"
)

// cleanStep is one named transformation in the cleaning pipeline.
type cleanStep struct {
	name  string
	apply func(string) string
}

// cleanSteps run in order. Each step is pure.
var cleanSteps = []cleanStep{
	{"strip-code-fences", stripCodeFences},
	{"strip-document-wrappers", stripDocumentWrappers},
	{"strip-preamble", stripPreamble},
	{"demote-h2", demoteH2},
	{"promote-first-h3", promoteFirstH3},
	{"promote-title-line", promoteTitleLine},
	{"promote-bold-section-titles", promoteBoldSectionTitles},
	{"collapse-blank-lines", collapseBlankLines},
	{"strip-scripts", stripScripts},
	{"trim", strings.TrimSpace},
}

// Clean normalises raw provider output into the document conventions the
// editor expects: a top-level <h1> title, no wrappers, no scripts.
func Clean(raw string) string {
	out := raw
	for _, step := range cleanSteps {
		out = step.apply(out)
	}
	return out
}

var (
	codeFenceRe   = regexp.MustCompile("```(?:html|markdown|md)?")
	wrapperRe     = regexp.MustCompile(`(?i)</?(?:html|head|body)\b[^>]*>|<!doctype[^>]*>`)
	preambleRe    = regexp.MustCompile(`(?i)^\s*(?:response|content|request summary|here(?:'s|’s| is)(?: the)?(?: response| content)?)[ \t]*(:\s*|\r?\n\s*|<)`)
	h2Re          = regexp.MustCompile(`(?is)<h2\b[^>]*>(.*?)</h2\s*>`)
	h3Re          = regexp.MustCompile(`(?is)<h3\b[^>]*>(.*?)</h3\s*>`)
	titleLineRe   = regexp.MustCompile(`^(?:<p>)?(\w[^<>]{4,59})(?:</p>)?$`)
	boldTitleRe   = regexp.MustCompile(`(?i)<p><strong>([^<:]{10,50}(?:Instructions|Overview|Guide|Information|Wishes|Note|Affairs|Plan|Arrangements))</strong></p>`)
	blankLinesRe  = regexp.MustCompile(`(?:\r?\n){3,}`)
	scriptRe      = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleRe       = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	htmlCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	yourNameRe    = regexp.MustCompile(`(?i)\[your name\]`)
)

func stripCodeFences(s string) string {
	return codeFenceRe.ReplaceAllString(s, "")
}

func stripDocumentWrappers(s string) string {
	return wrapperRe.ReplaceAllString(s, "")
}

// stripPreamble removes a leading "Response:" or "Here's the content" line
// opener. The opener must end in a colon, a line break or a tag, so a title
// like "Content Strategy" survives. A terminating "<" is kept.
func stripPreamble(s string) string {
	m := preambleRe.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}
	end := m[1]
	if s[m[2]:m[3]] == "<" {
		end = m[2]
	}
	return s[end:]
}

func demoteH2(s string) string {
	return h2Re.ReplaceAllString(s, "<h1>$1</h1>")
}

func hasH1(s string) bool {
	return strings.Contains(strings.ToLower(s), "<h1")
}

// promoteFirstH3 prepends an <h1> built from the first <h3> when the
// document has subheadings but no title. Only the text before the first
// colon is used.
func promoteFirstH3(s string) string {
	if hasH1(s) {
		return s
	}
	m := h3Re.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	title, _, _ := strings.Cut(m[1], ":")
	title = strings.TrimSpace(title)
	if title == "" {
		return s
	}
	return "<h1>" + title + "</h1>\n" + s
}

// promoteTitleLine turns a short untagged first line into the document
// title. The whole line must qualify; longer lines are left alone.
func promoteTitleLine(s string) string {
	if hasH1(s) {
		return s
	}
	first, rest, found := strings.Cut(strings.TrimLeft(s, " \t\r\n"), "\n")
	m := titleLineRe.FindStringSubmatch(strings.TrimRight(first, "\r"))
	if m == nil {
		return s
	}
	out := "<h1>" + strings.TrimSpace(m[1]) + "</h1>"
	if found {
		out += "\n" + rest
	}
	return out
}

func promoteBoldSectionTitles(s string) string {
	return boldTitleRe.ReplaceAllString(s, "<h1>$1</h1>")
}

func collapseBlankLines(s string) string {
	return blankLinesRe.ReplaceAllString(s, "\n\n")
}

func stripScripts(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	s = styleRe.ReplaceAllString(s, "")
	return htmlCommentRe.ReplaceAllString(s, "")
}

// SubstituteName replaces every [Your Name] placeholder, in any letter case,
// with the HTML-escaped name. An empty name leaves the content unchanged.
func SubstituteName(content, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return content
	}
	return yourNameRe.ReplaceAllLiteralString(content, html.EscapeString(name))
}
