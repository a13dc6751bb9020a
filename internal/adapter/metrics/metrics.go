// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Enrichment lookup outcomes.
const (
	OutcomeFound    = "found"
	OutcomeNoData   = "no_data"
	OutcomeError    = "error"
	OutcomeDisabled = "disabled"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	EnrichmentLookups *prometheus.CounterVec
	APIKeysIssued     *prometheus.CounterVec
	AdminApprovals    prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasteofthebes",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tasteofthebes",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		EnrichmentLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasteofthebes",
			Subsystem: "enrichment",
			Name:      "lookups_total",
			Help:      "Restaurant enrichment lookups by outcome.",
		}, []string{"outcome"}), // found, no_data, error, disabled
		APIKeysIssued: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasteofthebes",
			Subsystem: "auth",
			Name:      "api_keys_issued_total",
			Help:      "API keys issued by role.",
		}, []string{"role"}),
		AdminApprovals: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tasteofthebes",
			Subsystem: "auth",
			Name:      "admin_approvals_total",
			Help:      "Admin keys approved by a super admin.",
		}),
	}
}
