package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type traceSourceKey struct{}

// WithTraceSource returns ctx carrying src for *WithContext correlation.
func WithTraceSource(ctx context.Context, src TraceSource) context.Context {
	return context.WithValue(ctx, traceSourceKey{}, src)
}

// TraceSourceFromContext returns the TraceSource stored on ctx, if any.
func TraceSourceFromContext(ctx context.Context) (TraceSource, bool) {
	if ctx == nil {
		return nil, false
	}
	src, ok := ctx.Value(traceSourceKey{}).(TraceSource)
	return src, ok && src != nil
}

// extractTracingFields returns trace_id and span_id for ctx, preferring a
// registered TraceSource over an OpenTelemetry span context.
func (l *LoggerClient) extractTracingFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}

	if src, ok := TraceSourceFromContext(ctx); ok {
		traceID, spanID := src.TraceFields()
		if traceID == "" {
			return nil
		}
		return []zap.Field{
			zap.String("trace_id", traceID),
			zap.String("span_id", spanID),
		}
	}

	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanContext.TraceID().String()),
		zap.String("span_id", spanContext.SpanID().String()),
	}
}
