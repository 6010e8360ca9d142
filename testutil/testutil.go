// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/site-checkin/auth"
	"github.com/danielhkuo/site-checkin/cliparse"
	"github.com/danielhkuo/site-checkin/db"
	"github.com/danielhkuo/site-checkin/models"
)

// Admin credentials used by GetTestConfig and TestCredentials
const (
	TestAdminUser = "admin"
	TestAdminPass = "test-admin-pass"
)

// testDialect returns the dialect and URL for the test database.
// TEST_DATABASE_URL selects Postgres; otherwise a fresh SQLite file is used.
func testDialect(t *testing.T) (string, string) {
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		return cliparse.DatabasePostgres, url
	}
	return cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "checkin.db")
}

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dialect, url := testDialect(t)
	conn, err := db.Open(context.Background(), dialect, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if dialect == cliparse.DatabasePostgres {
		// Clean up tables before each test
		_, err = conn.Exec(`
			DROP TABLE IF EXISTS admin_session CASCADE;
			DROP TABLE IF EXISTS login_events CASCADE;
			DROP TABLE IF EXISTS logins CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(conn, dialect); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3000,
		DatabaseURL:    "file:test.db",
		DatabaseType:   cliparse.DatabaseSQLite,
		AdminUser:      TestAdminUser,
		AdminPass:      TestAdminPass,
		SessionSecret:  "test-session-secret",
		SessionMinutes: 120,
	}
}

// TestCredentials hashes the test admin password at the cheapest bcrypt cost
func TestCredentials(t *testing.T) auth.Credentials {
	t.Helper()

	creds, err := auth.NewCredentials(TestAdminUser, TestAdminPass, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to create test credentials: %v", err)
	}
	return creds
}

// NewCheckInRequest returns a complete check-in body for a device
func NewCheckInRequest(deviceID, firstName, lastName, company, area, cluster, plant, ts string) models.CheckInRequest {
	return models.CheckInRequest{
		DeviceID:  deviceID,
		FirstName: firstName,
		LastName:  lastName,
		JobID:     "JOB-" + deviceID,
		Phone:     "+968 9000 0000",
		Company:   company,
		Area:      area,
		Cluster:   cluster,
		Plant:     plant,
		TS:        ts,
	}
}

// CreateTestCheckIn inserts a session record directly and returns its id
func CreateTestCheckIn(t *testing.T, conn *sql.DB, req models.CheckInRequest) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO logins (device_id, first_name, last_name, job_id, phone, company, area, cluster, plant, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, req.DeviceID, req.FirstName, req.LastName, req.JobID, req.Phone,
		req.Company, req.Area, req.Cluster, req.Plant, req.TS).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test check-in: %v", err)
	}

	return id
}

// AddTestEvents sets the daily counter for a location tuple
func AddTestEvents(t *testing.T, conn *sql.DB, date, area, cluster, plant string, count int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO login_events (ts_date, area, cluster, plant, count)
		VALUES ($1, $2, $3, $4, $5)
	`, date, area, cluster, plant, count)
	if err != nil {
		t.Fatalf("Failed to create test events: %v", err)
	}
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// EventCount returns the counter for one location tuple, 0 when absent
func EventCount(t *testing.T, conn *sql.DB, date, area, cluster, plant string) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`
		SELECT count FROM login_events
		WHERE ts_date = $1 AND area = $2 AND cluster = $3 AND plant = $4
	`, date, area, cluster, plant).Scan(&n)
	if err == sql.ErrNoRows {
		return 0
	}
	if err != nil {
		t.Fatalf("Failed to query event count: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorCode checks the status and the error code of a JSON error body
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != code {
		t.Errorf("Expected error code %q, got %q", code, resp.Error)
	}
}
