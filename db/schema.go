// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/site-checkin/cliparse"
)

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, dialect, url string) (*sql.DB, error) {
	var driver string
	switch dialect {
	case cliparse.DatabasePostgres:
		driver = "postgres"
	case cliparse.DatabaseSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == cliparse.DatabaseSQLite {
		// SQLite allows one writer; serialise through a single connection
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(20)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var schema string
	switch dialect {
	case cliparse.DatabasePostgres:
		schema = postgresSchema
	case cliparse.DatabaseSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("unsupported database type %q", dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Current check-ins, one row per device
CREATE TABLE IF NOT EXISTS logins (
    id SERIAL PRIMARY KEY,
    device_id TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    job_id TEXT NOT NULL,
    phone TEXT NOT NULL,
    company TEXT NOT NULL,
    area TEXT NOT NULL,
    cluster TEXT NOT NULL,
    plant TEXT NOT NULL,
    ts TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_logins_ts ON logins(ts);

-- Daily check-in counters per location
CREATE TABLE IF NOT EXISTS login_events (
    id SERIAL PRIMARY KEY,
    ts_date DATE NOT NULL,
    area TEXT NOT NULL,
    cluster TEXT NOT NULL,
    plant TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 1,
    CONSTRAINT uniq_ev UNIQUE (ts_date, area, cluster, plant)
);

-- Admin sessions
CREATE TABLE IF NOT EXISTS admin_session (
    sid TEXT PRIMARY KEY,
    expires_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_admin_session_expires ON admin_session(expires_at);
`

// ts_date stays TEXT on SQLite so the driver returns it unparsed
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS logins (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    device_id TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    job_id TEXT NOT NULL,
    phone TEXT NOT NULL,
    company TEXT NOT NULL,
    area TEXT NOT NULL,
    cluster TEXT NOT NULL,
    plant TEXT NOT NULL,
    ts TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_logins_ts ON logins(ts);

CREATE TABLE IF NOT EXISTS login_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ts_date TEXT NOT NULL,
    area TEXT NOT NULL,
    cluster TEXT NOT NULL,
    plant TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 1,
    CONSTRAINT uniq_ev UNIQUE (ts_date, area, cluster, plant)
);

CREATE TABLE IF NOT EXISTS admin_session (
    sid TEXT PRIMARY KEY,
    expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_admin_session_expires ON admin_session(expires_at);
`
