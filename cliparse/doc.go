// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

The returned Config is a value and is never modified after startup; handlers
receive it by value.

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: Connection string (required)
  - DatabaseType: "postgres" (default) or "sqlite"
  - AdminUser / AdminPass: the single shared admin credential
  - SessionSecret: HMAC key for the admin session cookie
  - SessionMinutes: rolling admin session lifetime (default: 120)
  - StrictLocations: reject check-ins outside the site taxonomy
  - Production: secure cookies (APP_ENV or NODE_ENV=production)

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type
	-admin-user        Admin username
	-admin-pass        Admin password
	-session-secret    Session cookie secret
	-session-minutes   Session lifetime
	-strict-locations  true/false

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	ADMIN_USER       → -admin-user
	ADMIN_PASS       → -admin-pass
	SESSION_SECRET   → -session-secret
	SESSION_MINUTES  → -session-minutes
	STRICT_LOCATIONS → -strict-locations
	APP_ENV          (production only)
	NODE_ENV         (production only, same as APP_ENV)

CLI flags take precedence over environment variables. main loads a .env file
into the environment before parsing.

# Validation

ParseFlags returns an error if DATABASE_URL is missing, the database type is
unknown, or a numeric/boolean value does not parse. Missing secrets fall back
to development values; UsesDefaultSecrets reports that so main can warn.
*/
package cliparse
