// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the site check-in API.

# Handler Types

Each handler is a struct holding the dependencies it needs:

  - CheckInHandler: visitor check-in, status and check-out
  - AdminHandler: admin login, logout and session check
  - RosterHandler: roster listing, deletion, export and daily trends
  - MetaHandler: the location taxonomy for the check-in form

	checkins := handlers.NewCheckInHandler(db, cfg, models.DefaultTaxonomy())

# Visitor Flow

	POST /api/login   → CheckIn (upserts the device's record, bumps the daily counter)
	GET  /api/status  → Status
	POST /api/logout  → CheckOut

The device id is the visitor's only identity. One device has at most one
session record; counters are never decremented.

# Admin Flow

	POST   /api/admin/login          → Login (sets the kiosk_sid cookie)
	POST   /api/admin/logout         → Logout
	GET    /api/admin/me             → Me
	GET    /api/admin/logins         → List
	GET    /api/admin/logins/export  → Export (xlsx)
	DELETE /api/admin/login/{id}     → Delete
	GET    /api/admin/metrics        → Metrics

Roster and metrics routes are wrapped in middleware.RequireAdmin by the router.

# Errors

Failures respond with {"error":"<code>"} using the models.Err* codes.
Storage errors are logged and reported as "db".
*/
package handlers
