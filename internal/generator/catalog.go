// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"embed"
	"slices"
	"strings"
)

//go:embed catalog/*.html direct/*.html
var documentFS embed.FS

// TemplateEntry is one fill-in-the-blank document in the fallback catalog.
// Body is HTML and signs off with the [Your Name] placeholder.
type TemplateEntry struct {
	ID       string
	Keywords []string
	Body     string
}

// catalog is ordered: MatchTemplate returns the first entry whose keywords
// appear in the prompt.
var catalog = []TemplateEntry{
	{ID: "farewell-note", Keywords: []string{"goodbye", "farewell"}},
	{ID: "digital-accounts", Keywords: []string{"password", "account", "digital"}},
	{ID: "pet-care", Keywords: []string{"pet", "animal", "dog", "cat"}},
	{ID: "financial-affairs", Keywords: []string{"financial", "money", "bank", "asset"}},
	{ID: "social-media", Keywords: []string{"social media", "facebook", "twitter", "instagram"}},
	{ID: "personal-belongings", Keywords: []string{"belongings", "possessions", "stuff", "property"}},
	{ID: "medical-care", Keywords: []string{"medical", "health", "care", "treatment"}},
	{ID: "funeral-wishes", Keywords: []string{"funeral", "memorial", "burial", "ceremony"}},
	{ID: "legal-affairs", Keywords: []string{"legal", "will", "testament", "executor"}},
}

// directEntry is an advisory document returned for non-template prompts.
type directEntry struct {
	id       string
	keywords []string
	body     string
}

var directResponses = []directEntry{
	{id: "belongings-distribution", keywords: []string{"distribut", "belongings", "possessions"}},
	{id: "goodbye-letter", keywords: []string{"goodbye", "farewell", "letter"}},
	{id: "digital-assets", keywords: []string{"digital", "password", "account"}},
}

func init() {
	for i := range catalog {
		catalog[i].Body = mustReadDocument("catalog/" + catalog[i].ID + ".html")
	}
	for i := range directResponses {
		directResponses[i].body = mustReadDocument("direct/" + directResponses[i].id + ".html")
	}
}

func mustReadDocument(name string) string {
	b, err := documentFS.ReadFile(name)
	if err != nil {
		panic("generator: missing embedded document " + name)
	}
	return strings.TrimSpace(string(b))
}

// Templates returns a copy of the fallback catalog in match order.
func Templates() []TemplateEntry {
	out := make([]TemplateEntry, len(catalog))
	for i, e := range catalog {
		e.Keywords = slices.Clone(e.Keywords)
		out[i] = e
	}
	return out
}

// MatchTemplate returns the first catalog entry with a keyword contained in
// the prompt, compared case-insensitively.
func MatchTemplate(prompt string) (TemplateEntry, bool) {
	lower := strings.ToLower(prompt)
	for _, e := range catalog {
		if containsAny(lower, e.Keywords) {
			e.Keywords = slices.Clone(e.Keywords)
			return e, true
		}
	}
	return TemplateEntry{}, false
}
