package propagation

// PropagationContext is the minimal identifier triple carried by every scope.
// It keeps a trace continuous even when no span is being recorded.
type PropagationContext struct {
	TraceID      TraceID
	SpanID       SpanID
	ParentSpanID *SpanID
}

// NewPropagationContext returns a fresh context from the default generator.
func NewPropagationContext() PropagationContext {
	return defaultGenerator.PropagationContext()
}

// CreateChild keeps the trace id, draws a new span id and records the
// previous span id as the parent.
func (p PropagationContext) CreateChild(g *Generator) PropagationContext {
	if g == nil {
		g = defaultGenerator
	}
	return PropagationContext{
		TraceID:      p.TraceID,
		SpanID:       g.SpanID(),
		ParentSpanID: SpanIDPtr(p.SpanID),
	}
}

// UpdateFromTrace overwrites the context in place. It is used when an inbound
// header must take over a context even though no span is created.
func (p *PropagationContext) UpdateFromTrace(traceID TraceID, spanID SpanID, parentSpanID *SpanID) {
	p.TraceID = traceID
	p.SpanID = spanID
	p.ParentSpanID = nil
	if parentSpanID != nil {
		p.ParentSpanID = SpanIDPtr(*parentSpanID)
	}
}

// Clone returns a copy that shares no memory with p.
func (p PropagationContext) Clone() PropagationContext {
	c := p
	if p.ParentSpanID != nil {
		c.ParentSpanID = SpanIDPtr(*p.ParentSpanID)
	}
	return c
}

// TraceHeader formats the two-part fallback header. The sampling decision is
// never known for a bare propagation context, so no suffix is written.
func (p PropagationContext) TraceHeader() string {
	return TraceHeader{TraceID: p.TraceID, SpanID: p.SpanID}.String()
}
