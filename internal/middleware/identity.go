// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the caller's Identity.
	IdentityKey contextKey = "identity"
)

// Headers set by the authenticating proxy in front of the service.
const (
	HeaderUserID        = "X-User-Id"
	HeaderUserFirstName = "X-User-First-Name"
	HeaderUserLastName  = "X-User-Last-Name"
	HeaderUserEmail     = "X-User-Email"
	HeaderUserPhone     = "X-User-Phone"
	HeaderUserVerified  = "X-User-Verified"
	HeaderUserName      = "X-User-Name"
)

// Identity is the signed-in user as asserted by the identity provider.
type Identity struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Verified  bool
	Name      string // free-form display name, used when first/last are absent
}

// DisplayName returns "First Last", or Name when neither part is set.
func (id *Identity) DisplayName() string {
	if id == nil {
		return ""
	}
	full := strings.TrimSpace(id.FirstName + " " + id.LastName)
	if full != "" {
		return full
	}
	return id.Name
}

// LoadIdentity reads the identity headers and stores an Identity in the
// request context when a user id or a display name is present. It does NOT
// authenticate; the service must sit behind a proxy that sets these headers.
func LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header
		id := &Identity{
			UserID:    strings.TrimSpace(h.Get(HeaderUserID)),
			FirstName: strings.TrimSpace(h.Get(HeaderUserFirstName)),
			LastName:  strings.TrimSpace(h.Get(HeaderUserLastName)),
			Email:     strings.TrimSpace(h.Get(HeaderUserEmail)),
			Phone:     strings.TrimSpace(h.Get(HeaderUserPhone)),
			Name:      strings.TrimSpace(h.Get(HeaderUserName)),
		}
		id.Verified, _ = strconv.ParseBool(h.Get(HeaderUserVerified))

		if id.UserID != "" || id.DisplayName() != "" {
			r = r.WithContext(context.WithValue(r.Context(), IdentityKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireIdentity answers 401 when no user id was loaded. Must be applied
// after LoadIdentity.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromCtx(r.Context())
		if id == nil || id.UserID == "" {
			writeJSONError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromCtx extracts the identity from the request context.
// Returns nil if none was loaded.
func IdentityFromCtx(ctx context.Context) *Identity {
	id, _ := ctx.Value(IdentityKey).(*Identity)
	return id
}
