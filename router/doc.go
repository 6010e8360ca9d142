// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router configures HTTP routes for the site check-in server.

Uses Go 1.22+ enhanced routing with method and path patterns:

	mux.HandleFunc("GET /api/status", handler)
	mux.HandleFunc("DELETE /api/admin/login/{id}", handler)

# Route Overview

Visitor API:

	GET  /api/meta    - Companies and area/cluster/plant taxonomy
	POST /api/login   - Check in (one record per device)
	GET  /api/status  - Is this device checked in?
	POST /api/logout  - Check out

Admin API (session cookie, except login/logout/me):

	POST   /api/admin/login
	POST   /api/admin/logout
	GET    /api/admin/me
	GET    /api/admin/logins
	GET    /api/admin/logins/export
	DELETE /api/admin/login/{id}
	GET    /api/admin/metrics

Pages and operations:

	GET /health   - {"ok":true}
	GET /metrics  - Prometheus exposition (admin session)
	GET /Qadmin   - Admin dashboard
	GET /         - Visitor form (fallback for any other GET)

API routes are wrapped with middleware.WithLogging; admin data routes also
with middleware.RequireAdmin. The whole mux runs behind RequestID,
SecurityHeaders and NoStore.
*/
package router
