// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "institute_active_sessions",
			Help: "Number of console sessions currently registered.",
		})

	LoginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "institute_login_total",
			Help: "Console login attempts by outcome (ok, bad_credentials, throttled).",
		}, []string{"outcome"})

	EnquiriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "institute_enquiries_total",
			Help: "Enquiry submissions by result (accepted, invalid, failed).",
		}, []string{"result"})

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "institute_mutations_total",
			Help: "Persisted content mutations by collection key.",
		}, []string{"key"})

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "institute_store_errors_total",
			Help: "Failed store writes by collection key.",
		}, []string{"key"})

	RemoteFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "institute_remote_fallback_total",
			Help: "Remote reads served from the local data service instead.",
		}, []string{"resource"})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "institute_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "code"})

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "institute_http_request_duration_seconds",
			Help:    "HTTP request latency by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"})
)

func init() {
	prometheus.MustRegister(
		ActiveSessions,
		LoginTotal,
		EnquiriesTotal,
		MutationsTotal,
		StoreErrorsTotal,
		RemoteFallbackTotal,
		HTTPRequestsTotal,
		HTTPDuration,
	)
}
