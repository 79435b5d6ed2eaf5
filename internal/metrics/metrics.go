// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics bundles Prometheus collectors for the collection service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry         *prometheus.Registry
	MutationsTotal   *prometheus.CounterVec
	RefetchAttempts  prometheus.Counter
	RefetchUnsettled prometheus.Counter
	ViewBuild        prometheus.Histogram
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	mutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortbox_mutations_total",
			Help: "Item mutations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
	refetchAttempts := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shortbox_refetch_attempts_total",
			Help: "Store reads issued while waiting for a mutation to become visible.",
		},
	)
	refetchUnsettled := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shortbox_refetch_unsettled_total",
			Help: "Mutations still not visible after the refetch bound.",
		},
	)
	viewBuild := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shortbox_view_build_seconds",
			Help:    "Time spent filtering, grouping and sorting the collection view.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	registry.MustRegister(
		mutations, refetchAttempts, refetchUnsettled, viewBuild,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		Registry:         registry,
		MutationsTotal:   mutations,
		RefetchAttempts:  refetchAttempts,
		RefetchUnsettled: refetchUnsettled,
		ViewBuild:        viewBuild,
	}
}

// IncMutation counts a mutation outcome ("ok" or "failed").
func (m *Metrics) IncMutation(op, outcome string) {
	if m == nil {
		return
	}
	m.MutationsTotal.WithLabelValues(op, outcome).Inc()
}

// IncRefetch counts one refetch read.
func (m *Metrics) IncRefetch() {
	if m == nil {
		return
	}
	m.RefetchAttempts.Inc()
}

// IncUnsettled counts a mutation the refetch never observed.
func (m *Metrics) IncUnsettled() {
	if m == nil {
		return
	}
	m.RefetchUnsettled.Inc()
}

// ObserveViewBuild records how long a view took to build.
func (m *Metrics) ObserveViewBuild(d time.Duration) {
	if m == nil {
		return
	}
	m.ViewBuild.Observe(d.Seconds())
}
