// Package observability defines the Observer hook the scope and tracing
// packages call when an operation completes.
//
// Observers are optional. Components hold an Observer field that may be nil
// and report through Notify:
//
//	observability.Notify(m.observer, observability.OperationContext{
//	    Component: observability.ComponentTracing,
//	    Operation: observability.OperationStartTransaction,
//	    Resource:  name,
//	    Outcome:   observability.OutcomeSampled,
//	})
//
// The metrics package provides a Prometheus-backed implementation. Multi
// combines several observers, for example metrics and an audit log:
//
//	obs := observability.Multi(promMetrics, observability.ObserverFunc(func(c observability.OperationContext) {
//	    log.Debug("operation", c.Error, map[string]interface{}{
//	        "component": c.Component,
//	        "operation": c.Operation,
//	    })
//	}))
//
// Observers run inline on the calling goroutine, so they must be cheap and
// safe for concurrent use.
package observability
