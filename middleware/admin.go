// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/site-checkin/models"
	"github.com/danielhkuo/site-checkin/sessions"
)

// RequireAdmin rejects requests without an elevated admin session
func RequireAdmin(store *sessions.Store, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.Authenticate(r.Context(), w, r)
		if errors.Is(err, sessions.ErrNoSession) {
			ErrorResponse(w, http.StatusUnauthorized, models.ErrUnauthorized)
			return
		}
		if err != nil {
			slog.Error("failed to check admin session", "error", err)
			ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
			return
		}
		next(w, r)
	}
}
