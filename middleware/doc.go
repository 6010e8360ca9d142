// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms) and records the request in the Prometheus collectors,
labelled with the matched route pattern.

# Global Middleware

Applied around the whole mux with Chain, outermost first:

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{}),
		middleware.NoStore,
	)

  - RequestID: echoes X-Request-ID or generates a UUID
  - SecurityHeaders: X-Frame-Options, X-Content-Type-Options, Referrer-Policy
  - NoStore: Cache-Control: no-store on /api/ paths

# Admin Guard

	mux.HandleFunc("GET /api/admin/logins",
		middleware.WithLogging(middleware.RequireAdmin(store, h.ListLogins)))

Responds 401 {"error":"unauthorized"} without a valid admin session and
refreshes the rolling session otherwise.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrMissingFields)

Error bodies carry only the code string; causes go to the log.
*/
package middleware
