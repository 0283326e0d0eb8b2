// Package metrics exposes extraction counters and latencies to Prometheus.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mnov88/marked/pkg/extract"
)

// Document outcomes, used as the "outcome" label.
const (
	OutcomeSuccess    = "success"
	OutcomeFailed     = "failed"
	OutcomeSkipped    = "skipped"
	OutcomeParseError = "parse_error"
)

// Metrics provides observability for extraction runs. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Documents processed by outcome
	Documents *prometheus.CounterVec

	// Time from reading a notice to writing its record
	ExtractDuration prometheus.Histogram

	// Records extracted without a resolved main work
	TreeFallback prometheus.Counter

	// Extracted items by kind: cases, relations, eurovoc, implementations
	Items *prometheus.CounterVec
}

// New creates a Metrics instance on its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		Documents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cellar_documents_total",
			Help: "Total notices processed by outcome",
		}, []string{"outcome"}), // outcome: "success", "failed", "skipped", "parse_error"

		ExtractDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cellar_extract_duration_seconds",
			Help:    "Duration of one notice extraction including parse and write",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		TreeFallback: factory.NewCounter(prometheus.CounterOpts{
			Name: "cellar_tree_fallback_total",
			Help: "Total records extracted with tree-wide paths because no main work resolved",
		}),

		Items: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cellar_extracted_items_total",
			Help: "Total extracted items by kind",
		}, []string{"kind"}),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// IncrementOutcome records a processed notice.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Documents.WithLabelValues(outcome).Inc()
	}
}

// ObserveDuration records the duration of one extraction.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m != nil {
		m.ExtractDuration.Observe(d.Seconds())
	}
}

// ObserveRecord records the extraction mode and item counts of record.
func (m *Metrics) ObserveRecord(record *extract.Record) {
	if m == nil || record == nil {
		return
	}
	if record.Extraction.Mode == extract.ModeTreeFallback {
		m.TreeFallback.Inc()
	}
	stats := record.Stats
	m.Items.WithLabelValues("cases").Add(float64(stats.Cases))
	m.Items.WithLabelValues("articles").Add(float64(stats.Articles))
	m.Items.WithLabelValues("relations").Add(float64(stats.Relations))
	m.Items.WithLabelValues("eurovoc").Add(float64(stats.Eurovoc))
	m.Items.WithLabelValues("implementations").Add(float64(stats.Implementations))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteToTextfile writes the current values for the node exporter textfile
// collector.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
