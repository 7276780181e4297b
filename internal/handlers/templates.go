// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"deathnote/internal/editor"
	"deathnote/internal/generator"
	"deathnote/internal/middleware"
)

// Templates lists the editor templates with the caller's name filled in.
func (a *API) Templates(w http.ResponseWriter, r *http.Request) {
	name := middleware.IdentityFromCtx(r.Context()).DisplayName()

	list := editor.Templates()
	for i := range list {
		list[i].Content = generator.SubstituteName(list[i].Content, name)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default":   editor.Default().ID,
		"templates": list,
	})
}

// Template returns a single editor template by id.
func (a *API) Template(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := editor.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}

	tmpl.Content = generator.SubstituteName(tmpl.Content, middleware.IdentityFromCtx(r.Context()).DisplayName())
	writeJSON(w, http.StatusOK, tmpl)
}
