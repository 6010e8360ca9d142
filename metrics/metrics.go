// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus collectors for the kiosk.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kiosk_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	checkIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_checkins_total",
		Help: "Accepted check-in submissions by area.",
	}, []string{"area"})

	checkOuts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kiosk_checkouts_total",
		Help: "Check-outs that removed a session record.",
	})

	adminLogins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_admin_logins_total",
		Help: "Admin login attempts by result.",
	}, []string{"result"})

	sessionsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kiosk_admin_sessions_pruned_total",
		Help: "Expired admin sessions removed by the pruner.",
	})
)

// Handler serves the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one completed HTTP request
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// OtherArea is the area label for check-ins outside the site taxonomy.
const OtherArea = "other"

// CheckIn counts a check-in under area, or under OtherArea when known is false.
func CheckIn(area string, known bool) {
	if !known {
		area = OtherArea
	}
	checkIns.WithLabelValues(area).Inc()
}

func CheckOut() { checkOuts.Inc() }

func AdminLogin(ok bool) {
	if ok {
		adminLogins.WithLabelValues("success").Inc()
		return
	}
	adminLogins.WithLabelValues("failure").Inc()
}

func SessionsPruned(n int64) { sessionsPruned.Add(float64(n)) }
