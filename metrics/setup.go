package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// durationBuckets covers sub-millisecond scope work up to minute-long
// transactions.
var durationBuckets = []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 15, 60}

// Metrics records scope and tracing operations in a private Prometheus
// registry and optionally serves it over HTTP.
//
// Metrics implements observability.Observer.
type Metrics struct {
	// Server serves /metrics. It is nil when Config.Address is empty.
	Server *http.Server

	// Registry holds every collector owned by this instance.
	Registry *prometheus.Registry

	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	spans      *prometheus.CounterVec
}

// NewMetrics builds the registry, registers the operation collectors and,
// unless disabled, the Go runtime and process collectors. Every metric
// carries a constant "service" label.
func NewMetrics(cfg Config) *Metrics {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()
	registerer := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Scope and tracing operations by outcome.",
			},
			[]string{"component", "operation", "outcome"},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of scope and tracing operations; for finished spans, the span duration.",
				Buckets:   durationBuckets,
			},
			[]string{"component", "operation"},
		),
		spans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sampling_decisions_total",
				Help:      "Transaction sampling verdicts.",
			},
			[]string{"verdict"},
		),
	}

	registerer.MustRegister(m.operations, m.durations, m.spans)
	if !cfg.DisableRuntimeCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	addr := DefaultAddress
	if cfg.Address != nil {
		addr = *cfg.Address
	}
	if addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		m.Server = &http.Server{
			Addr:    addr,
			Handler: mux,
		}
	}

	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
