// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the site check-in server.

Visitors check in from their phone with name, job ID, phone, company and
worksite (area, cluster, plant). An administrator watches who is currently
on site, removes stale entries, exports the roster and follows daily
check-in trends per location.

# Starting the Server

The server reads configuration from CLI flags, environment variables and an
optional .env file:

	DATABASE_URL=postgres://... go run .

Or with SQLite and flags:

	go run . -t sqlite -d checkin.db -p 3000

# Configuration

Required settings:

  - DATABASE_URL (-d): Postgres URL or SQLite file path

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - ADMIN_USER (-admin-user): Admin username (default: admin)
  - ADMIN_PASS (-admin-pass): Admin password (default: changeme)
  - SESSION_SECRET (-session-secret): Cookie signing secret (default: dev_secret)
  - SESSION_MINUTES (-session-minutes): Rolling admin session lifetime (default: 120)
  - STRICT_LOCATIONS (-strict-locations): Reject check-ins outside the taxonomy
  - APP_ENV=production (or NODE_ENV=production): Secure cookies

# Architecture

  - handlers: HTTP request handlers (check-in, admin, roster, trends)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, security headers, admin guard, JSON helpers
  - sessions: Server-side admin sessions with rolling expiry
  - auth: Admin credentials and cookie signing
  - db: Connection and schema for Postgres and SQLite
  - report: xlsx roster export
  - metrics: Prometheus collectors
  - web: Embedded visitor form and admin dashboard
  - models: Request/response types and the site taxonomy
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
