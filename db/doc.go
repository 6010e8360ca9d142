// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Two dialects are supported, selected by cliparse.Config.DatabaseType:

  - postgres: github.com/lib/pq
  - sqlite:   modernc.org/sqlite (pure Go, used by the test suite)

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

Queries elsewhere use $N placeholders, which both drivers accept, and
portable SQL (ON CONFLICT upserts, CAST(.. AS TEXT)).

# Schema Creation

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - logins: current check-in per device (device_id UNIQUE)
  - login_events: daily counters, UNIQUE (ts_date, area, cluster, plant)
  - admin_session: admin session ids with unix expiry

ts_date is DATE on Postgres and TEXT on SQLite. Read it with
CAST(ts_date AS TEXT) to get "yyyy-mm-dd" from both.
*/
package db
