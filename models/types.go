package models

// Error codes returned in ErrorResponse.Error
const (
	ErrMissingFields   = "missing_fields"
	ErrMissingDevice   = "missing_device"
	ErrInvalidJSON     = "invalid_json"
	ErrInvalidTS       = "invalid_ts"
	ErrInvalidDate     = "invalid_date"
	ErrInvalidID       = "invalid_id"
	ErrUnknownLocation = "unknown_location"
	ErrBadCreds        = "bad_creds"
	ErrUnauthorized    = "unauthorized"
	ErrDB              = "db"
)

// DateLayout is the calendar date format used for counters and metric bounds.
// Check-in timestamps are expected as "2006-01-02 15:04"; only the leading
// date is parsed, the rest is stored verbatim.
const DateLayout = "2006-01-02"

// Request types

type CheckInRequest struct {
	DeviceID  string `json:"deviceId" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	JobID     string `json:"jobId" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Company   string `json:"company" validate:"required"`
	Area      string `json:"area" validate:"required"`
	Cluster   string `json:"cluster" validate:"required"`
	Plant     string `json:"plant" validate:"required"`
	TS        string `json:"ts" validate:"required"`
}

type CheckOutRequest struct {
	DeviceID string `json:"deviceId"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response types

type OKResponse struct {
	OK bool `json:"ok"`
}

type DeleteResponse struct {
	OK      bool  `json:"ok"`
	Deleted int64 `json:"deleted"`
}

type StatusResponse struct {
	LoggedIn  bool   `json:"loggedIn"`
	FirstName string `json:"firstName,omitempty"`
}

type AdminMeResponse struct {
	Authed bool `json:"authed"`
}

type RosterResponse struct {
	Count int       `json:"count"`
	Rows  []CheckIn `json:"rows"`
}

// Domain types

// CheckIn is a visitor's current session record, one per device.
type CheckIn struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	JobID     string `json:"job_id"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Area      string `json:"area"`
	Cluster   string `json:"cluster"`
	Plant     string `json:"plant"`
	TS        string `json:"ts"`
}

// DailyCount is one point of the metrics series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// RosterFilter narrows the roster listing. Empty fields are ignored.
type RosterFilter struct {
	Area    string
	Cluster string
	Plant   string
	Company string
	Name    string
}

// MetricsFilter narrows the metrics aggregation. Start and End are
// inclusive "2006-01-02" bounds.
type MetricsFilter struct {
	Start   string
	End     string
	Area    string
	Cluster string
	Plant   string
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
