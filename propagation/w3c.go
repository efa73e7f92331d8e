package propagation

import (
	"context"

	otelpropagation "go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceparentHeader is the W3C carrier key.
const TraceparentHeader = "traceparent"

var w3c = otelpropagation.TraceContext{}

// InjectW3C writes h into carrier as a W3C "traceparent" header. W3C flags
// cannot express an undefined decision, so anything but SampledTrue is
// written as not sampled. Nil identifiers are not injected.
func InjectW3C(carrier map[string]string, h TraceHeader) {
	if h.TraceID.IsNil() || h.SpanID.IsNil() {
		return
	}
	var flags trace.TraceFlags
	if h.Sampled == SampledTrue {
		flags = trace.FlagsSampled
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    h.TraceID.OTel(),
		SpanID:     h.SpanID.OTel(),
		TraceFlags: flags,
		Remote:     true,
	})
	ctx := trace.ContextWithRemoteSpanContext(context.Background(), sc)
	w3c.Inject(ctx, otelpropagation.MapCarrier(carrier))
}

// ExtractW3C reads a W3C "traceparent" header from carrier. A set sampled
// flag maps to SampledTrue; an unset flag leaves the decision undefined
// because upstream may simply not have recorded.
func ExtractW3C(carrier map[string]string) (TraceHeader, bool) {
	sc := trace.SpanContextFromContext(ContextWithW3C(context.Background(), carrier))
	if !sc.IsValid() {
		return TraceHeader{}, false
	}
	h := TraceHeader{
		TraceID: TraceID(sc.TraceID()),
		SpanID:  SpanID(sc.SpanID()),
	}
	if sc.IsSampled() {
		h.Sampled = SampledTrue
	}
	return h, true
}

// ContextWithW3C returns ctx carrying the remote OpenTelemetry span context
// described by carrier, for code that correlates through OpenTelemetry.
func ContextWithW3C(ctx context.Context, carrier map[string]string) context.Context {
	return w3c.Extract(ctx, otelpropagation.MapCarrier(carrier))
}
