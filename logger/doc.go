// Package logger provides the structured logger used across scopekit.
//
// LoggerClient wraps Uber's Zap with a small API that takes an optional error
// and any number of field maps:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "checkout",
//		EnableTracing: true,
//	})
//	log.Info("transaction finished", nil, map[string]interface{}{"op": "http.server"})
//
// # Trace Correlation
//
// The *WithContext variants attach "trace_id" and "span_id" when tracing is
// enabled. The ids come from a TraceSource stored on the context (scope.Local
// registers itself through scope.WithLocal). Without one, an OpenTelemetry
// span context on the context is used instead, which covers contexts built
// from an inbound W3C "traceparent" header.
//
// # FX Module
//
// FXModule provides *LoggerClient and the Logger interface and syncs the
// underlying Zap logger on stop. A logger.Config must be in the container.
package logger
