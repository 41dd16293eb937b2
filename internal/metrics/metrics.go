package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barangay_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barangay_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReceiptsIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barangay_receipts_issued_total",
			Help: "Total number of income receipts issued by type",
		},
		[]string{"type"},
	)

	HouseholdSyncCorrections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "barangay_household_sync_corrections_total",
			Help: "Number of times a household member count drifted and was corrected",
		},
	)
)
