// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/site-checkin/models"
	"github.com/danielhkuo/site-checkin/testutil"
)

func newCheckInHandler(t *testing.T) (*CheckInHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })
	return NewCheckInHandler(db, testutil.GetTestConfig(), models.DefaultTaxonomy()), db
}

func checkIn(h *CheckInHandler, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.CheckIn(w, testutil.MakeRequest("POST", "/api/login", body, nil))
	return w
}

func TestCheckIn_NewDevice(t *testing.T) {
	h, db := newCheckInHandler(t)

	req := testutil.NewCheckInRequest("abc", "Aisha", "Said", "OQ", "North", "Cluster N1", "Plant N1-A", "2024-05-01 08:00")
	w := checkIn(h, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.OKResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK {
		t.Error("Expected ok=true")
	}

	if n := testutil.CountRows(t, db, "logins"); n != 1 {
		t.Errorf("Expected 1 session record, got %d", n)
	}
	if n := testutil.EventCount(t, db, "2024-05-01", "North", "Cluster N1", "Plant N1-A"); n != 1 {
		t.Errorf("Expected counter at 1, got %d", n)
	}
}

func TestCheckIn_RepeatDeviceOverwrites(t *testing.T) {
	h, db := newCheckInHandler(t)

	first := testutil.NewCheckInRequest("abc", "Aisha", "Said", "OQ", "North", "Cluster N1", "Plant N1-A", "2024-05-01 08:00")
	testutil.AssertStatus(t, checkIn(h, first), http.StatusOK)

	// Same tuple again increments the counter
	testutil.AssertStatus(t, checkIn(h, first), http.StatusOK)
	if n := testutil.EventCount(t, db, "2024-05-01", "North", "Cluster N1", "Plant N1-A"); n != 2 {
		t.Errorf("Expected counter at 2, got %d", n)
	}

	// New tuple starts its own counter and overwrites the record
	moved := testutil.NewCheckInRequest("abc", "Aisha", "Said-Hinai", "PDO", "South", "Cluster S1", "Plant S1-C", "2024-05-01 13:30")
	testutil.AssertStatus(t, checkIn(h, moved), http.StatusOK)

	if n := testutil.CountRows(t, db, "logins"); n != 1 {
		t.Errorf("Expected 1 session record, got %d", n)
	}
	if n := testutil.EventCount(t, db, "2024-05-01", "South", "Cluster S1", "Plant S1-C"); n != 1 {
		t.Errorf("Expected new tuple counter at 1, got %d", n)
	}
	if n := testutil.EventCount(t, db, "2024-05-01", "North", "Cluster N1", "Plant N1-A"); n != 2 {
		t.Errorf("Expected old tuple counter unchanged at 2, got %d", n)
	}

	var lastName, plant, ts string
	err := db.QueryRow(`SELECT last_name, plant, ts FROM logins WHERE device_id = $1`, "abc").Scan(&lastName, &plant, &ts)
	if err != nil {
		t.Fatalf("Failed to query record: %v", err)
	}
	if lastName != "Said-Hinai" || plant != "Plant S1-C" || ts != "2024-05-01 13:30" {
		t.Errorf("Record not overwritten: %s %s %s", lastName, plant, ts)
	}
}

func TestCheckIn_TrimsFields(t *testing.T) {
	h, db := newCheckInHandler(t)

	req := testutil.NewCheckInRequest("  abc ", " Aisha ", "Said", "OQ", " North", "Cluster N1", "Plant N1-A ", "2024-05-01 08:00")
	testutil.AssertStatus(t, checkIn(h, req), http.StatusOK)

	var first string
	if err := db.QueryRow(`SELECT first_name FROM logins WHERE device_id = $1`, "abc").Scan(&first); err != nil {
		t.Fatalf("Failed to query trimmed record: %v", err)
	}
	if first != "Aisha" {
		t.Errorf("Expected trimmed first name, got %q", first)
	}
	if n := testutil.EventCount(t, db, "2024-05-01", "North", "Cluster N1", "Plant N1-A"); n != 1 {
		t.Errorf("Expected trimmed tuple counter at 1, got %d", n)
	}
}

func TestCheckIn_Validation(t *testing.T) {
	valid := func() models.CheckInRequest {
		return testutil.NewCheckInRequest("abc", "Aisha", "Said", "OQ", "North", "Cluster N1", "Plant N1-A", "2024-05-01 08:00")
	}

	testCases := []struct {
		name   string
		mutate func(*models.CheckInRequest)
		code   string
	}{
		{"missing device", func(r *models.CheckInRequest) { r.DeviceID = "" }, models.ErrMissingFields},
		{"blank first name", func(r *models.CheckInRequest) { r.FirstName = "   " }, models.ErrMissingFields},
		{"missing phone", func(r *models.CheckInRequest) { r.Phone = "" }, models.ErrMissingFields},
		{"missing plant", func(r *models.CheckInRequest) { r.Plant = "" }, models.ErrMissingFields},
		{"missing ts", func(r *models.CheckInRequest) { r.TS = "" }, models.ErrMissingFields},
		{"short ts", func(r *models.CheckInRequest) { r.TS = "2024-05" }, models.ErrInvalidTS},
		{"garbage ts", func(r *models.CheckInRequest) { r.TS = "yesterday at noon" }, models.ErrInvalidTS},
		{"impossible date", func(r *models.CheckInRequest) { r.TS = "2024-13-45 08:00" }, models.ErrInvalidTS},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, db := newCheckInHandler(t)

			req := valid()
			tc.mutate(&req)
			testutil.AssertErrorCode(t, checkIn(h, req), http.StatusBadRequest, tc.code)

			if n := testutil.CountRows(t, db, "logins"); n != 0 {
				t.Errorf("Expected no records after rejection, got %d", n)
			}
			if n := testutil.CountRows(t, db, "login_events"); n != 0 {
				t.Errorf("Expected no counters after rejection, got %d", n)
			}
		})
	}
}

func TestCheckIn_InvalidJSON(t *testing.T) {
	h, _ := newCheckInHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/login", nil)
	r.Body = http.NoBody
	h.CheckIn(w, r)

	testutil.AssertErrorCode(t, w, http.StatusBadRequest, models.ErrInvalidJSON)
}

func TestCheckIn_UnknownLocationAcceptedByDefault(t *testing.T) {
	h, db := newCheckInHandler(t)

	req := testutil.NewCheckInRequest("abc", "Aisha", "Said", "Acme", "West", "Cluster W9", "Plant W9-Z", "2024-05-01 08:00")
	testutil.AssertStatus(t, checkIn(h, req), http.StatusOK)

	if n := testutil.EventCount(t, db, "2024-05-01", "West", "Cluster W9", "Plant W9-Z"); n != 1 {
		t.Errorf("Expected counter at 1, got %d", n)
	}
}

// Free-text areas must not grow the per-area check-in series
func TestCheckIn_UnknownAreasShareOneSeries(t *testing.T) {
	h, _ := newCheckInHandler(t)

	for i := 0; i < 50; i++ {
		area := fmt.Sprintf("Yard %d", i)
		req := testutil.NewCheckInRequest(fmt.Sprintf("dev-%d", i), "Aisha", "Said", "OQ", area, "Cluster X", "Plant X", "2024-05-01 08:00")
		testutil.AssertStatus(t, checkIn(h, req), http.StatusOK)
	}

	n, err := promtestutil.GatherAndCount(prometheus.DefaultGatherer, "kiosk_checkins_total")
	if err != nil {
		t.Fatal(err)
	}
	// One series per taxonomy area plus the shared bucket
	if limit := len(models.DefaultTaxonomy().Areas) + 1; n > limit {
		t.Errorf("Expected at most %d check-in series, got %d", limit, n)
	}
}

func TestCheckIn_StrictLocations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.StrictLocations = true
	h := NewCheckInHandler(db, cfg, models.DefaultTaxonomy())

	testCases := []struct {
		name    string
		company string
		area    string
		cluster string
		plant   string
		status  int
	}{
		{"known tuple", "OQ", "North", "Cluster N1", "Plant N1-A", http.StatusOK},
		{"unknown company", "Acme", "North", "Cluster N1", "Plant N1-A", http.StatusBadRequest},
		{"unknown area", "OQ", "West", "Cluster N1", "Plant N1-A", http.StatusBadRequest},
		{"cluster under wrong area", "OQ", "South", "Cluster N1", "Plant N1-A", http.StatusBadRequest},
		{"plant under wrong cluster", "OQ", "North", "Cluster N2", "Plant N1-A", http.StatusBadRequest},
	}

	for i, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewCheckInRequest("dev-"+string(rune('a'+i)), "Aisha", "Said",
				tc.company, tc.area, tc.cluster, tc.plant, "2024-05-01 08:00")
			w := checkIn(h, req)
			if tc.status == http.StatusOK {
				testutil.AssertStatus(t, w, http.StatusOK)
				return
			}
			testutil.AssertErrorCode(t, w, tc.status, models.ErrUnknownLocation)
		})
	}
}

func TestCheckIn_StorageFailure(t *testing.T) {
	h, db := newCheckInHandler(t)
	db.Close()

	req := testutil.NewCheckInRequest("abc", "Aisha", "Said", "OQ", "North", "Cluster N1", "Plant N1-A", "2024-05-01 08:00")
	testutil.AssertErrorCode(t, checkIn(h, req), http.StatusInternalServerError, models.ErrDB)
}

func TestStatus(t *testing.T) {
	h, db := newCheckInHandler(t)
	testutil.CreateTestCheckIn(t, db, testutil.NewCheckInRequest("abc", "Aisha", "Said", "OQ", "North", "Cluster N1", "Plant N1-A", "2024-05-01 08:00"))

	testCases := []struct {
		name      string
		path      string
		loggedIn  bool
		firstName string
	}{
		{"absent device id", "/api/status", false, ""},
		{"unknown device", "/api/status?deviceId=zzz", false, ""},
		{"checked in", "/api/status?deviceId=abc", true, "Aisha"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Status(w, httptest.NewRequest("GET", tc.path, nil))
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.StatusResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.LoggedIn != tc.loggedIn || resp.FirstName != tc.firstName {
				t.Errorf("Expected %v/%q, got %v/%q", tc.loggedIn, tc.firstName, resp.LoggedIn, resp.FirstName)
			}
		})
	}
}

func TestStatus_StorageFailure(t *testing.T) {
	h, db := newCheckInHandler(t)
	db.Close()

	w := httptest.NewRecorder()
	h.Status(w, httptest.NewRequest("GET", "/api/status?deviceId=abc", nil))
	testutil.AssertErrorCode(t, w, http.StatusInternalServerError, models.ErrDB)
}

func TestCheckOut(t *testing.T) {
	h, db := newCheckInHandler(t)

	req := testutil.NewCheckInRequest("abc", "Aisha", "Said", "OQ", "North", "Cluster N1", "Plant N1-A", "2024-05-01 08:00")
	testutil.AssertStatus(t, checkIn(h, req), http.StatusOK)

	w := httptest.NewRecorder()
	h.CheckOut(w, testutil.MakeRequest("POST", "/api/logout", models.CheckOutRequest{DeviceID: "abc"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DeleteResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK || resp.Deleted != 1 {
		t.Errorf("Expected ok with deleted=1, got %+v", resp)
	}

	// Status now reports not logged in
	w = httptest.NewRecorder()
	h.Status(w, httptest.NewRequest("GET", "/api/status?deviceId=abc", nil))
	var status models.StatusResponse
	testutil.AssertJSON(t, w, &status)
	if status.LoggedIn {
		t.Error("Expected loggedIn=false after check-out")
	}

	// Counters are never decremented
	if n := testutil.EventCount(t, db, "2024-05-01", "North", "Cluster N1", "Plant N1-A"); n != 1 {
		t.Errorf("Expected counter to stay at 1, got %d", n)
	}
}

func TestCheckOut_UnknownDevice(t *testing.T) {
	h, _ := newCheckInHandler(t)

	w := httptest.NewRecorder()
	h.CheckOut(w, testutil.MakeRequest("POST", "/api/logout", models.CheckOutRequest{DeviceID: "nobody"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DeleteResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK || resp.Deleted != 0 {
		t.Errorf("Expected ok with deleted=0, got %+v", resp)
	}
}

func TestCheckOut_MissingDevice(t *testing.T) {
	h, _ := newCheckInHandler(t)

	w := httptest.NewRecorder()
	h.CheckOut(w, testutil.MakeRequest("POST", "/api/logout", models.CheckOutRequest{DeviceID: "  "}, nil))
	testutil.AssertErrorCode(t, w, http.StatusBadRequest, models.ErrMissingDevice)
}

func TestCheckInDate(t *testing.T) {
	testCases := []struct {
		ts      string
		want    string
		wantErr bool
	}{
		{"2024-05-01 08:00", "2024-05-01", false},
		{"2024-05-01", "2024-05-01", false},
		{"2024-05-01T08:00:00Z", "2024-05-01", false},
		{"2024-5-1 08:00", "", true},
		{"", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.ts, func(t *testing.T) {
			got, err := checkInDate(tc.ts)
			if (err != nil) != tc.wantErr {
				t.Fatalf("checkInDate(%q) error = %v, wantErr %v", tc.ts, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("checkInDate(%q) = %q, want %q", tc.ts, got, tc.want)
			}
		})
	}
}
