// Package propagation provides the identifiers and wire formats that carry a
// trace across process boundaries.
//
// The package is the leaf of the scopekit dependency graph. It defines:
//   - TraceID and SpanID: fixed-width identifiers with hex encode/decode
//   - Generator: random identifier generation with an injectable source
//   - PropagationContext: the (trace id, span id, parent span id) triple that
//     every scope carries even when no span object exists
//   - Sampled: the tri-state sampling verdict
//   - TraceHeader and TraceContext: the "sentry-trace" header codec
//   - InjectW3C / ExtractW3C: a bridge to the W3C "traceparent" header built
//     on the OpenTelemetry propagators
//
// # Trace Header
//
// The header format is:
//
//	{32-hex-trace-id}-{16-hex-span-id}[-{0|1}]
//
// The third segment is optional. Its absence means the sampling decision is
// still undefined; "1" means sampled and "0" means not sampled.
//
//	h, err := propagation.ParseTraceHeader("bc6d53f15eb88f4320054569b8c553d4-b72fa28504b07285-1")
//	if err != nil {
//		return err // wraps ErrMalformedHeader, ErrInvalidLength or ErrInvalidCharacter
//	}
//	fmt.Println(h.TraceID, h.Sampled) // bc6d53f15eb88f4320054569b8c553d4 true
//
// # Randomness
//
// Identifiers are not cryptographically secure. By default each call seeds a
// fresh PCG generator from the current time mixed with a process-wide
// sequence number. Tests inject a deterministic math/rand/v2 Source through
// NewGenerator.
package propagation
