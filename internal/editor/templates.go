// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds the starter documents offered in the message editor.
package editor

import (
	"embed"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template is a starter document. Content is HTML and may contain the
// [Your Name] placeholder.
type Template struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

var templates = []Template{
	{ID: "goodbye-note", Label: "Goodbye Note", Description: "A heartfelt goodbye message for loved ones"},
	{ID: "final-wishes", Label: "Final Wishes", Description: "Outline your funeral preferences and final messages"},
	{ID: "digital-legacy", Label: "Digital Legacy", Description: "Instructions for handling your digital accounts and assets"},
	{ID: "personal-inventory", Label: "Personal Inventory", Description: "Catalog of personal belongings and distribution wishes"},
	{ID: "legacy-letter", Label: "Legacy Letter", Description: "Share your values, wisdom, and hopes for future generations"},
}

func init() {
	for i := range templates {
		b, err := templateFS.ReadFile("templates/" + templates[i].ID + ".html")
		if err != nil {
			panic("editor: missing template " + templates[i].ID)
		}
		templates[i].Content = strings.TrimSpace(string(b))
	}
}

// Templates returns all editor templates in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Default returns the template the editor opens with.
func Default() Template {
	return templates[0]
}

// Find returns the template with the given id.
func Find(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
