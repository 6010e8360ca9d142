package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// Insecure fallbacks kept for local development only
const (
	DefaultAdminUser     = "admin"
	DefaultAdminPass     = "changeme"
	DefaultSessionSecret = "dev_secret"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	AdminUser       string
	AdminPass       string
	SessionSecret   string
	SessionMinutes  int
	StrictLocations bool
	Production      bool
}

// SessionTTL is the admin session lifetime
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionMinutes) * time.Minute
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("site-checkin", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminUser, "admin-user", "", "Admin username")
	fs.StringVar(&cfg.AdminPass, "admin-pass", "", "Admin password (prefer env)")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session cookie signing secret (prefer env)")
	fs.IntVar(&cfg.SessionMinutes, "session-minutes", 0, "Admin session lifetime in minutes")

	var strict string
	fs.StringVar(&strict, "strict-locations", "", "Reject check-ins outside the site taxonomy (true/false)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabasePostgres
		}
	}
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.AdminUser == "" {
		cfg.AdminUser = envOr("ADMIN_USER", DefaultAdminUser)
	}
	if cfg.AdminPass == "" {
		cfg.AdminPass = envOr("ADMIN_PASS", DefaultAdminPass)
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = envOr("SESSION_SECRET", DefaultSessionSecret)
	}

	if cfg.SessionMinutes == 0 {
		if s := os.Getenv("SESSION_MINUTES"); s != "" {
			mins, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_MINUTES env variable")
			}
			cfg.SessionMinutes = mins
		} else {
			cfg.SessionMinutes = 120
		}
	}
	if cfg.SessionMinutes <= 0 {
		return Config{}, errors.New("session minutes must be positive")
	}

	if strict == "" {
		strict = os.Getenv("STRICT_LOCATIONS")
	}
	if strict != "" {
		v, err := strconv.ParseBool(strict)
		if err != nil {
			return Config{}, fmt.Errorf("invalid strict-locations value %q", strict)
		}
		cfg.StrictLocations = v
	}

	// NODE_ENV is accepted as an alias of APP_ENV
	cfg.Production = strings.EqualFold(os.Getenv("APP_ENV"), "production") ||
		strings.EqualFold(os.Getenv("NODE_ENV"), "production")

	return cfg, nil
}

// UsesDefaultSecrets reports whether the admin password or session secret
// were left at their development fallbacks.
func (c Config) UsesDefaultSecrets() bool {
	return c.AdminPass == DefaultAdminPass || c.SessionSecret == DefaultSessionSecret
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
