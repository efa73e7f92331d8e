// Package metrics exposes scope and tracing activity as Prometheus metrics.
//
// A *Metrics owns a private registry, so several instances can coexist in
// one process and in tests. It implements observability.Observer: hand it to
// the scope manager and the tracer and every reported operation is counted.
//
// # Metrics
//
// With the default namespace the registry exposes:
//
//	scopekit_operations_total{component,operation,outcome}
//	scopekit_operation_duration_seconds{component,operation}
//	scopekit_sampling_decisions_total{verdict}
//
// plus the Go runtime and process collectors unless
// Config.DisableRuntimeCollectors is set. Every series carries the constant
// label service=Config.ServiceName.
//
// # Usage
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "checkout"})
//	mgr := scope.NewManager(scope.Config{}, log, scope.WithObserver(m))
//	tr := tracing.NewTracer(mgr, log, tracing.WithObserver(m))
//
// With fx, include FXModule; it provides *Metrics, Collector and
// observability.Observer, and runs the HTTP server between start and stop.
// Set Config.Address to an empty string to keep the registry without a
// server, e.g. when the application mounts Handler on its own mux.
package metrics
