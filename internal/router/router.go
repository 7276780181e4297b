// Package router sets up all HTTP routes and middleware chains for the
// DeathNote API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"deathnote/internal/handlers"
	"deathnote/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter guards the generation endpoint.
func New(api *handlers.API, limiter middleware.Limiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadIdentity)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Generation calls a paid provider; everything else is local.
		r.With(middleware.RateLimit(limiter)).Post("/generate", api.Generate)
		r.Post("/draft", api.Draft)
		r.Post("/extract", api.Extract)
		r.Get("/providers", api.Providers)

		r.Get("/templates", api.Templates)
		r.Get("/templates/{id}", api.Template)

		// Contacts belong to a signed-in user.
		r.Route("/contacts", func(r chi.Router) {
			r.Use(middleware.RequireIdentity)
			r.Get("/", api.ListContacts)
			r.Post("/", api.AddContact)
			r.Delete("/{id}", api.RemoveContact)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
