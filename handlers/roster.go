// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/site-checkin/cliparse"
	"github.com/danielhkuo/site-checkin/middleware"
	"github.com/danielhkuo/site-checkin/models"
	"github.com/danielhkuo/site-checkin/report"
)

// RosterHandler serves the admin-only roster and trend endpoints
type RosterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRosterHandler(db *sql.DB, cfg cliparse.Config) *RosterHandler {
	return &RosterHandler{db: db, cfg: cfg}
}

// List handles GET /api/admin/logins
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queryRoster(r.Context(), rosterFilter(r))
	if err != nil {
		slog.Error("failed to query roster", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RosterResponse{
		Count: len(rows),
		Rows:  rows,
	})
}

// Delete handles DELETE /api/admin/login/{id}
func (h *RosterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ErrInvalidID)
		return
	}

	res, err := h.db.ExecContext(r.Context(), `DELETE FROM logins WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete login", "error", err, "id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	slog.Info("roster entry deleted", "id", id, "deleted", deleted)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{OK: true, Deleted: deleted})
}

// Export handles GET /api/admin/logins/export
// Same filters as List, rendered as an xlsx attachment
func (h *RosterHandler) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queryRoster(r.Context(), rosterFilter(r))
	if err != nil {
		slog.Error("failed to query roster", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	// Render fully before writing headers so a failure can still be a JSON error
	var buf bytes.Buffer
	if err := report.WriteRosterXLSX(&buf, rows); err != nil {
		slog.Error("failed to render roster workbook", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ErrDB)
		return
	}

	filename := report.Filename(time.Now().Format(models.DateLayout))
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write roster workbook", "error", err)
	}

	slog.Info("roster exported", "rows", len(rows))
}

func rosterFilter(r *http.Request) models.RosterFilter {
	q := r.URL.Query()
	return models.RosterFilter{
		Area:    strings.TrimSpace(q.Get("area")),
		Cluster: strings.TrimSpace(q.Get("cluster")),
		Plant:   strings.TrimSpace(q.Get("plant")),
		Company: strings.TrimSpace(q.Get("company")),
		Name:    strings.TrimSpace(q.Get("name")),
	}
}

// whereBuilder accumulates AND-combined conditions with numbered placeholders
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// eq adds "column = $n" when value is non-empty
func (b *whereBuilder) eq(column, value string) {
	if value == "" {
		return
	}
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// cmp adds "column op $n" when value is non-empty
func (b *whereBuilder) cmp(column, op, value string) {
	if value == "" {
		return
	}
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s %s $%d", column, op, len(b.args)))
}

func (b *whereBuilder) String() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// queryRoster returns the filtered roster ordered by ts, newest first
func (h *RosterHandler) queryRoster(ctx context.Context, f models.RosterFilter) ([]models.CheckIn, error) {
	var where whereBuilder
	where.eq("area", f.Area)
	where.eq("cluster", f.Cluster)
	where.eq("plant", f.Plant)
	where.eq("company", f.Company)

	query := `
		SELECT id, first_name, last_name, job_id, phone, company, area, cluster, plant, ts
		FROM logins` + where.String() + `
		ORDER BY ts DESC, id DESC`

	rows, err := h.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query logins: %w", err)
	}
	defer rows.Close()

	// Name matching folds case in Go; SQLite's LOWER only folds ASCII
	needle := strings.ToLower(f.Name)

	result := []models.CheckIn{}
	for rows.Next() {
		var c models.CheckIn
		if err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.JobID,
			&c.Phone,
			&c.Company,
			&c.Area,
			&c.Cluster,
			&c.Plant,
			&c.TS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan login: %w", err)
		}
		if needle != "" && !nameContains(c, needle) {
			continue
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate logins: %w", err)
	}

	return result, nil
}

// nameContains reports whether the lower-cased needle occurs in the first or last name
func nameContains(c models.CheckIn, needle string) bool {
	return strings.Contains(strings.ToLower(c.FirstName), needle) ||
		strings.Contains(strings.ToLower(c.LastName), needle)
}
