// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/site-checkin/middleware"
	"github.com/danielhkuo/site-checkin/models"
)

// Metrics handles GET /api/admin/metrics
// Sums daily counters per date, ascending. Dates without events are omitted.
func (h *RosterHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.MetricsFilter{
		Start:   strings.TrimSpace(q.Get("start")),
		End:     strings.TrimSpace(q.Get("end")),
		Area:    strings.TrimSpace(q.Get("area")),
		Cluster: strings.TrimSpace(q.Get("cluster")),
		Plant:   strings.TrimSpace(q.Get("plant")),
	}

	if !validDate(filter.Start) || !validDate(filter.End) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrInvalidDate)
		return
	}

	series, err := h.queryDailyCounts(r.Context(), filter)
	if err != nil {
		slog.Error("failed to query metrics", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, series)
}

// validDate accepts an empty bound or a yyyy-mm-dd date
func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

func (h *RosterHandler) queryDailyCounts(ctx context.Context, f models.MetricsFilter) ([]models.DailyCount, error) {
	var where whereBuilder
	where.cmp("ts_date", ">=", f.Start)
	where.cmp("ts_date", "<=", f.End)
	where.eq("area", f.Area)
	where.eq("cluster", f.Cluster)
	where.eq("plant", f.Plant)

	// CAST keeps the date as yyyy-mm-dd text on both dialects
	query := `
		SELECT CAST(ts_date AS TEXT), SUM(count)
		FROM login_events` + where.String() + `
		GROUP BY ts_date
		ORDER BY ts_date ASC`

	rows, err := h.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query login events: %w", err)
	}
	defer rows.Close()

	series := []models.DailyCount{}
	for rows.Next() {
		var d models.DailyCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		series = append(series, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate login events: %w", err)
	}

	return series, nil
}
