// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package web embeds the visitor form and the admin dashboard.
package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
)

//go:embed static/index.html static/admin.html static/app.js static/admin.js static/style.css
var staticFS embed.FS

// ContentSecurityPolicy allows the embedded assets plus the Chart.js CDN
const ContentSecurityPolicy = "default-src 'self'; script-src 'self' https://cdn.jsdelivr.net; " +
	"style-src 'self'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'"

// Assets serves the embedded scripts and stylesheet by file name
func Assets() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}

// VisitorPage serves the check-in form
func VisitorPage(w http.ResponseWriter, r *http.Request) {
	servePage(w, "static/index.html")
}

// AdminPage serves the admin dashboard
func AdminPage(w http.ResponseWriter, r *http.Request) {
	servePage(w, "static/admin.html")
}

func servePage(w http.ResponseWriter, name string) {
	data, err := staticFS.ReadFile(name)
	if err != nil {
		slog.Error("embedded page missing", "page", name, "error", err)
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}
