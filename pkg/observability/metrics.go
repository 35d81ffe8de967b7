package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the planner's Prometheus collectors.
type Metrics struct {
	// DesignsComputed counts completed design computations, labeled by the
	// selected fiber coating.
	DesignsComputed *prometheus.CounterVec

	// ResolveErrors counts failed compound resolutions.
	ResolveErrors prometheus.Counter

	// CompoundsResolved counts successfully resolved compounds.
	CompoundsResolved prometheus.Counter

	// RequestDuration times HTTP requests by route and status code.
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the planner collectors on the given
// registerer. Pass prometheus.DefaultRegisterer in production and a fresh
// registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DesignsComputed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "spmeplan",
				Name:      "designs_computed_total",
				Help:      "Number of Box-Behnken designs computed.",
			},
			[]string{"fiber"},
		),
		ResolveErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "spmeplan",
				Name:      "resolve_errors_total",
				Help:      "Number of failed compound resolutions.",
			},
		),
		CompoundsResolved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "spmeplan",
				Name:      "compounds_resolved_total",
				Help:      "Number of successfully resolved compounds.",
			},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "spmeplan",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
	}

	reg.MustRegister(m.DesignsComputed, m.ResolveErrors, m.CompoundsResolved, m.RequestDuration)
	return m
}
