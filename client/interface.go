package client

import (
	"github.com/aalemi-dev/scopekit/event"
	"github.com/aalemi-dev/scopekit/propagation"
)

// Client transmits events. It is bound to a scope and consulted by the
// tracing facade for sampling options.
type Client interface {
	// IsActive reports whether the client accepts events.
	IsActive() bool

	// Options returns the client's tracing and event options.
	Options() Options

	// CaptureEvent hands a fully assembled event to the transport. It returns
	// the event id and whether the event was accepted.
	CaptureEvent(e *event.Event) (event.ID, bool)
}

// Options is the configuration surface the engines read.
type Options struct {
	// SampleRate is the static sample rate; nil disables tracing.
	SampleRate *float64

	// TracesSampler, when set, decides the rate per transaction and takes
	// priority over SampleRate.
	TracesSampler TracesSampler

	Environment string
	Release     string
	ServerName  string
}

// TracingEnabled reports whether a sample rate is configured.
func (o Options) TracingEnabled() bool {
	return o.SampleRate != nil
}

// TracesSampler returns a sample rate for one transaction. Values outside
// [0, 1] and exactly 0 mean "do not sample".
type TracesSampler func(ctx SamplingContext) float64

// SamplingContext is passed to a TracesSampler.
type SamplingContext struct {
	// Span is the span being decided.
	Span SpanView
	// Parent is the span's parent, nil for a transaction.
	Parent SpanView
	// TraceContext is the inbound trace context, nil when the transaction was
	// not continued from a header.
	TraceContext *propagation.TraceContext
	// Name is the transaction name.
	Name string
}

// SpanView is the read-only span surface offered to samplers.
type SpanView interface {
	Op() string
	Name() string
	TraceID() propagation.TraceID
	SpanID() propagation.SpanID
	Sampled() propagation.Sampled
	IsTransaction() bool
}
