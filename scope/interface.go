package scope

import (
	"github.com/aalemi-dev/scopekit/propagation"
)

// SpanRef is the active span as seen by a scope. The tracing package's
// *Span implements it.
type SpanRef interface {
	TraceID() propagation.TraceID
	SpanID() propagation.SpanID
	Sampled() propagation.Sampled
	IsTransaction() bool

	// TraceHeader returns the span's outgoing header, sampled suffix
	// included when the decision is defined.
	TraceHeader() propagation.TraceHeader
}
