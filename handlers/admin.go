// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/site-checkin/auth"
	"github.com/danielhkuo/site-checkin/metrics"
	"github.com/danielhkuo/site-checkin/middleware"
	"github.com/danielhkuo/site-checkin/models"
	"github.com/danielhkuo/site-checkin/sessions"
)

type AdminHandler struct {
	creds auth.Credentials
	store *sessions.Store
}

func NewAdminHandler(creds auth.Credentials, store *sessions.Store) *AdminHandler {
	return &AdminHandler{creds: creds, store: store}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrInvalidJSON)
		return
	}

	// Same response for unknown user and wrong password
	if !h.creds.Verify(req.Username, req.Password) {
		metrics.AdminLogin(false)
		slog.Warn("admin login rejected", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ErrBadCreds)
		return
	}

	if err := h.store.Create(r.Context(), w); err != nil {
		slog.Error("failed to create admin session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	metrics.AdminLogin(true)
	slog.Info("admin logged in", "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Destroy(r.Context(), w, r); err != nil {
		slog.Error("failed to destroy admin session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// Me handles GET /api/admin/me
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	err := h.store.Authenticate(r.Context(), w, r)
	if errors.Is(err, sessions.ErrNoSession) {
		middleware.JSONResponse(w, http.StatusOK, models.AdminMeResponse{Authed: false})
		return
	}
	if err != nil {
		slog.Error("failed to check admin session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminMeResponse{Authed: true})
}
