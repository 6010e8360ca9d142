// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/site-checkin/cliparse"
	"github.com/danielhkuo/site-checkin/metrics"
	"github.com/danielhkuo/site-checkin/middleware"
	"github.com/danielhkuo/site-checkin/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CheckInHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	taxonomy models.Taxonomy
}

func NewCheckInHandler(db *sql.DB, cfg cliparse.Config, taxonomy models.Taxonomy) *CheckInHandler {
	return &CheckInHandler{db: db, cfg: cfg, taxonomy: taxonomy}
}

// CheckIn handles POST /api/login
// Upserts the device's session record and bumps the daily location counter
func (h *CheckInHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req models.CheckInRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrInvalidJSON)
		return
	}

	trimCheckIn(&req)
	if err := validate.Struct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrMissingFields)
		return
	}

	date, err := checkInDate(req.TS)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrInvalidTS)
		return
	}

	if h.cfg.StrictLocations {
		if !h.taxonomy.HasCompany(req.Company) || !h.taxonomy.HasLocation(req.Area, req.Cluster, req.Plant) {
			middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrUnknownLocation)
			return
		}
	}

	if err := h.recordCheckIn(r.Context(), req, date); err != nil {
		slog.Error("failed to record check-in", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	metrics.CheckIn(req.Area, h.taxonomy.HasArea(req.Area))
	slog.Info("visitor checked in",
		"area", req.Area,
		"cluster", req.Cluster,
		"plant", req.Plant,
		"company", req.Company,
	)

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// recordCheckIn writes the session record and the counter in one transaction
func (h *CheckInHandler) recordCheckIn(ctx context.Context, req models.CheckInRequest, date string) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO logins (device_id, first_name, last_name, job_id, phone, company, area, cluster, plant, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (device_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			job_id = EXCLUDED.job_id,
			phone = EXCLUDED.phone,
			company = EXCLUDED.company,
			area = EXCLUDED.area,
			cluster = EXCLUDED.cluster,
			plant = EXCLUDED.plant,
			ts = EXCLUDED.ts
	`, req.DeviceID, req.FirstName, req.LastName, req.JobID, req.Phone,
		req.Company, req.Area, req.Cluster, req.Plant, req.TS)
	if err != nil {
		return fmt.Errorf("failed to upsert login: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO login_events (ts_date, area, cluster, plant, count)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (ts_date, area, cluster, plant) DO UPDATE SET
			count = login_events.count + 1
	`, date, req.Area, req.Cluster, req.Plant)
	if err != nil {
		return fmt.Errorf("failed to upsert login event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit check-in: %w", err)
	}
	return nil
}

// Status handles GET /api/status?deviceId=
func (h *CheckInHandler) Status(w http.ResponseWriter, r *http.Request) {
	deviceID := strings.TrimSpace(r.URL.Query().Get("deviceId"))
	if deviceID == "" {
		middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{LoggedIn: false})
		return
	}

	var firstName string
	err := h.db.QueryRowContext(r.Context(), `
		SELECT first_name FROM logins WHERE device_id = $1
	`, deviceID).Scan(&firstName)

	if errors.Is(err, sql.ErrNoRows) {
		middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{LoggedIn: false})
		return
	}
	if err != nil {
		slog.Error("failed to query login status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		LoggedIn:  true,
		FirstName: firstName,
	})
}

// CheckOut handles POST /api/logout
// Removing an unknown device is not an error; deleted reports 0
func (h *CheckInHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req models.CheckOutRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrInvalidJSON)
		return
	}

	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrMissingDevice)
		return
	}

	res, err := h.db.ExecContext(r.Context(), `DELETE FROM logins WHERE device_id = $1`, deviceID)
	if err != nil {
		slog.Error("failed to delete login", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	if deleted > 0 {
		metrics.CheckOut()
		slog.Info("visitor checked out")
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{OK: true, Deleted: deleted})
}

func trimCheckIn(req *models.CheckInRequest) {
	for _, f := range []*string{
		&req.DeviceID, &req.FirstName, &req.LastName, &req.JobID, &req.Phone,
		&req.Company, &req.Area, &req.Cluster, &req.Plant, &req.TS,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// checkInDate returns the calendar date of a "2006-01-02 15:04" timestamp
func checkInDate(ts string) (string, error) {
	if len(ts) < len(models.DateLayout) {
		return "", fmt.Errorf("timestamp %q too short", ts)
	}
	d, err := time.Parse(models.DateLayout, ts[:len(models.DateLayout)])
	if err != nil {
		return "", err
	}
	return d.Format(models.DateLayout), nil
}
