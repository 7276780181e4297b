// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"deathnote/internal/contacts"
	"deathnote/internal/middleware"
)

// These handlers run behind middleware.RequireIdentity, so the identity and
// its user id are always present.

// ListContacts returns the caller's trusted contacts.
func (a *API) ListContacts(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"contacts": a.contacts.List(id.UserID)})
}

type contactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Type  string `json:"type"`
}

// AddContact validates and stores a new trusted contact.
func (a *API) AddContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := middleware.IdentityFromCtx(r.Context())
	c, err := a.contacts.Add(id.UserID, contacts.Contact{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Type:  contacts.Type(req.Type),
	})
	if err != nil {
		var verr *contacts.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, contacts.ErrLimitReached):
			writeError(w, http.StatusConflict, "Contact limit reached")
		default:
			slog.Error("add contact failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	slog.Info("contact added", "user_id", id.UserID, "contact_id", c.ID)
	writeJSON(w, http.StatusCreated, c)
}

// RemoveContact deletes one of the caller's contacts.
func (a *API) RemoveContact(w http.ResponseWriter, r *http.Request) {
	contactID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Contact not found")
		return
	}

	id := middleware.IdentityFromCtx(r.Context())
	if err := a.contacts.Remove(id.UserID, contactID); err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		slog.Error("remove contact failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.Info("contact removed", "user_id", id.UserID, "contact_id", contactID)
	w.WriteHeader(http.StatusNoContent)
}
