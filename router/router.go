// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/site-checkin/auth"
	"github.com/danielhkuo/site-checkin/cliparse"
	"github.com/danielhkuo/site-checkin/handlers"
	"github.com/danielhkuo/site-checkin/metrics"
	"github.com/danielhkuo/site-checkin/middleware"
	"github.com/danielhkuo/site-checkin/models"
	"github.com/danielhkuo/site-checkin/sessions"
	"github.com/danielhkuo/site-checkin/web"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, creds auth.Credentials, store *sessions.Store, taxonomy models.Taxonomy) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	metaHandler := handlers.NewMetaHandler(taxonomy)
	checkInHandler := handlers.NewCheckInHandler(db, cfg, taxonomy)
	adminHandler := handlers.NewAdminHandler(creds, store)
	rosterHandler := handlers.NewRosterHandler(db, cfg)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(store, h))
	}

	// Health and metrics
	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /metrics", admin(metrics.Handler().ServeHTTP))

	// Visitor API (public)
	mux.HandleFunc("GET /api/meta", middleware.WithLogging(metaHandler.Meta))
	mux.HandleFunc("POST /api/login", middleware.WithLogging(checkInHandler.CheckIn))
	mux.HandleFunc("GET /api/status", middleware.WithLogging(checkInHandler.Status))
	mux.HandleFunc("POST /api/logout", middleware.WithLogging(checkInHandler.CheckOut))

	// Admin session
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("POST /api/admin/logout", middleware.WithLogging(adminHandler.Logout))
	mux.HandleFunc("GET /api/admin/me", middleware.WithLogging(adminHandler.Me))

	// Admin data (requires session)
	mux.HandleFunc("GET /api/admin/logins", admin(rosterHandler.List))
	mux.HandleFunc("GET /api/admin/logins/export", admin(rosterHandler.Export))
	mux.HandleFunc("DELETE /api/admin/login/{id}", admin(rosterHandler.Delete))
	mux.HandleFunc("GET /api/admin/metrics", admin(rosterHandler.Metrics))

	// Pages and assets
	assets := web.Assets()
	mux.HandleFunc("GET /Qadmin", web.AdminPage)
	mux.Handle("GET /app.js", assets)
	mux.Handle("GET /admin.js", assets)
	mux.Handle("GET /style.css", assets)

	// Everything else falls back to the visitor form
	mux.HandleFunc("GET /", web.VisitorPage)

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{
			ContentSecurityPolicy: web.ContentSecurityPolicy,
		}),
		middleware.NoStore,
	)
}
