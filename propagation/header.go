package propagation

import (
	"fmt"
	"strings"
)

// SentryTraceHeader is the carrier key for the trace header.
const SentryTraceHeader = "sentry-trace"

// TraceHeader is the decoded form of "{trace}-{span}[-{0|1}]".
type TraceHeader struct {
	TraceID TraceID
	SpanID  SpanID
	Sampled Sampled
}

// String formats the header. The sampled suffix is written only when the
// decision is defined.
func (h TraceHeader) String() string {
	switch h.Sampled {
	case SampledTrue:
		return h.TraceID.String() + "-" + h.SpanID.String() + "-1"
	case SampledFalse:
		return h.TraceID.String() + "-" + h.SpanID.String() + "-0"
	default:
		return h.TraceID.String() + "-" + h.SpanID.String()
	}
}

// ParseTraceHeader decodes a trace header. Surrounding whitespace is ignored.
// A wrong segment count or a sampled segment other than "0" or "1" fails with
// ErrMalformedHeader; bad identifiers fail with ErrInvalidLength or
// ErrInvalidCharacter.
func ParseTraceHeader(header string) (TraceHeader, error) {
	parts := strings.Split(strings.TrimSpace(header), "-")
	if len(parts) < 2 || len(parts) > 3 {
		return TraceHeader{}, fmt.Errorf("%w: %q", ErrMalformedHeader, header)
	}

	traceID, err := TraceIDFromHex(parts[0])
	if err != nil {
		return TraceHeader{}, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}
	spanID, err := SpanIDFromHex(parts[1])
	if err != nil {
		return TraceHeader{}, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	h := TraceHeader{TraceID: traceID, SpanID: spanID}
	if len(parts) == 3 {
		switch parts[2] {
		case "1":
			h.Sampled = SampledTrue
		case "0":
			h.Sampled = SampledFalse
		default:
			return TraceHeader{}, fmt.Errorf("%w: sampled flag %q", ErrMalformedHeader, parts[2])
		}
	}
	return h, nil
}

// TraceContext is the transient result of reading an inbound header for a
// transaction about to start.
type TraceContext struct {
	Name        string
	Op          string
	Description string

	// TraceID is the inbound trace id.
	TraceID *TraceID
	// SpanID is the id the local side will use, when already chosen.
	SpanID *SpanID
	// ParentSpanID is the upstream span id taken from the header.
	ParentSpanID *SpanID
	// Sampled is the upstream decision, SampledUndefined when absent.
	Sampled Sampled
}

// TraceContextFromHeader parses header into a TraceContext for a transaction
// with the given name and op.
func TraceContextFromHeader(name, op, header string) (TraceContext, error) {
	h, err := ParseTraceHeader(header)
	if err != nil {
		return TraceContext{}, err
	}
	return h.TraceContext(name, op), nil
}

// TraceContext converts the header into a TraceContext. The header's span id
// becomes the parent of whatever the receiving side creates.
func (h TraceHeader) TraceContext(name, op string) TraceContext {
	traceID := h.TraceID
	return TraceContext{
		Name:         name,
		Op:           op,
		TraceID:      &traceID,
		ParentSpanID: SpanIDPtr(h.SpanID),
		Sampled:      h.Sampled,
	}
}
