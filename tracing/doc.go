// Package tracing records transactions and spans and decides which of them
// are sampled.
//
// A transaction is the root span of a tree; its children are recorded in
// the same Recorder arena and refer to their parent by index. Children
// inherit the trace id and the sampling decision and never resample.
//
// The Tracer works on the scope.Local carried by a context:
//
//	tx, err := tr.ContinueFromCarrier(ctx, "GET /orders", "http.server", headers)
//	if err != nil {
//	    return err
//	}
//	defer tr.FinishTransaction(ctx, tx)
//
//	span, _ := tr.StartSpan(ctx, "db.query", "SELECT * FROM orders")
//	// ...
//	_ = tr.FinishSpan(ctx, span)
//
// Unsampled transactions come back as nil and every Tracer method accepts a
// nil span, so call sites need no sampling checks. The exception is an
// inbound "-0" header: it yields an unsampled transaction so that the
// decision reaches downstream services.
//
// Sampling follows client.Options: without a sample rate nothing is traced,
// a TracesSampler overrides the static rate, and an inbound header decision
// is honoured when no TracesSampler is set. Random draws come from a fresh
// time-seeded source per call unless a Sampler with an explicit
// math/rand/v2 Source is injected with WithSampler.
package tracing
