// Package metrics collects Prometheus metrics for a single export run.
//
// The exporter is a batch job, so metrics live in a private registry and are
// written once at the end of the run in node-exporter textfile format.
//
// Metrics:
//   - monday_export_requests_total{query,outcome} (Counter): GraphQL requests by query and outcome
//   - monday_export_request_duration_seconds{query} (Histogram): request latency by query
//   - monday_export_pages_fetched_total (Counter): item pages received
//   - monday_export_items_fetched_total (Counter): items received across all pages
//   - monday_export_errors_total{class} (Counter): fatal errors by class
//   - monday_export_last_success_timestamp_seconds (Gauge): end of the last successful export
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "monday_export"

// OutcomeSuccess is the outcome label of a request that returned usable data.
const OutcomeSuccess = "success"

// Metrics is safe to use as a nil pointer; all recording methods are no-ops then.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	pages       prometheus.Counter
	items       prometheus.Counter
	errors      *prometheus.CounterVec
	lastSuccess prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "GraphQL requests sent to monday.com by query and outcome.",
		}, []string{"query", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of GraphQL requests by query.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		pages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Item pages received.",
		}),
		items: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_fetched_total",
			Help:      "Items received across all pages.",
		}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Fatal export errors by class.",
		}, []string{"class"}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful export.",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveRequest(query, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(query, outcome).Inc()
	m.duration.WithLabelValues(query).Observe(d.Seconds())
}

func (m *Metrics) PageFetched(items int) {
	if m == nil {
		return
	}
	m.pages.Inc()
	m.items.Add(float64(items))
}

func (m *Metrics) RecordError(class string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(class).Inc()
}

func (m *Metrics) MarkSuccess(t time.Time) {
	if m == nil {
		return
	}
	m.lastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes all collected metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
