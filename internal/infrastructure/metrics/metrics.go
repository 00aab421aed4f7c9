// Package metrics holds the Prometheus collectors of the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests partitioned by method, route, and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// HTTPInFlight is the number of requests being served
	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// CommissionReports counts generated commission reports by output format
	CommissionReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commission_reports_total",
			Help: "Commission reports generated",
		},
		[]string{"format"},
	)

	// PayoutsCreated counts ledger entries created
	PayoutsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "commission_payouts_created_total",
			Help: "Commission payouts recorded in the ledger",
		},
	)

	// SlugCacheLookups counts public slug lookups by result (hit, miss, error)
	SlugCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barbershop_slug_cache_lookups_total",
			Help: "Barbershop slug cache lookups",
		},
		[]string{"result"},
	)
)
