// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/site-checkin/auth"
	"github.com/danielhkuo/site-checkin/cliparse"
	"github.com/danielhkuo/site-checkin/db"
	"github.com/danielhkuo/site-checkin/metrics"
	"github.com/danielhkuo/site-checkin/models"
	"github.com/danielhkuo/site-checkin/router"
	"github.com/danielhkuo/site-checkin/sessions"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	if cfg.UsesDefaultSecrets() {
		slog.Warn("using default admin password or session secret; set ADMIN_PASS and SESSION_SECRET")
	}

	// Stops the pruner and triggers shutdown on Ctrl-C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Hash the admin password once; it is never rotated at runtime
	creds, err := auth.NewCredentials(cfg.AdminUser, cfg.AdminPass, bcrypt.DefaultCost)
	if err != nil {
		slog.Error("admin credentials invalid", "error", err)
		os.Exit(1)
	}

	store := sessions.NewStore(dbConn, cfg)
	store.StartPruner(ctx, sessions.PruneInterval, metrics.SessionsPruned)

	// Create router
	handler := router.NewRouter(dbConn, cfg, creds, store, models.DefaultTaxonomy())

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "strict_locations", cfg.StrictLocations)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}
