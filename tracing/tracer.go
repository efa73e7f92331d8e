package tracing

import (
	"context"
	"strings"

	"github.com/aalemi-dev/scopekit/event"
	"github.com/aalemi-dev/scopekit/logger"
	"github.com/aalemi-dev/scopekit/observability"
	"github.com/aalemi-dev/scopekit/propagation"
	"github.com/aalemi-dev/scopekit/scope"
	"github.com/zoobzio/clockz"
)

// Tracer starts and finishes transactions and spans for the Local carried
// on a context, and binds them into its scopes.
type Tracer struct {
	mgr      *scope.Manager
	log      *logger.LoggerClient
	sampler  *Sampler
	clock    clockz.Clock
	gen      *propagation.Generator
	observer observability.Observer
}

// Option configures a Tracer.
type Option func(*Tracer)

// WithSampler replaces the default time-seeded sampler.
func WithSampler(s *Sampler) Option {
	return func(t *Tracer) {
		if s != nil {
			t.sampler = s
		}
	}
}

// WithClock sets the clock used for span timestamps.
func WithClock(c clockz.Clock) Option {
	return func(t *Tracer) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithGenerator sets the identifier generator.
func WithGenerator(g *propagation.Generator) Option {
	return func(t *Tracer) {
		if g != nil {
			t.gen = g
		}
	}
}

// WithObserver reports tracing operations to o.
func WithObserver(o observability.Observer) Option {
	return func(t *Tracer) {
		t.observer = o
	}
}

// NewTracer returns a Tracer bound to mgr. The clock and generator default
// to the manager's. It fails with scope.ErrNotInitialized when mgr is nil.
func NewTracer(mgr *scope.Manager, log *logger.LoggerClient, opts ...Option) (*Tracer, error) {
	if mgr == nil {
		return nil, scope.ErrNotInitialized
	}
	if log == nil {
		log = mgr.Logger()
	}
	t := &Tracer{
		mgr:     mgr,
		log:     log,
		sampler: NewSampler(nil),
		clock:   mgr.Clock(),
		gen:     mgr.Generator(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// StartTransaction starts a transaction and makes it the current span.
//
// It returns a nil span, without error, when no active client is bound, when
// tracing is disabled, or when the transaction is not sampled. Whenever a
// client with tracing enabled is bound, the isolation scope's propagation
// context gets a new span id, sampled or not.
func (t *Tracer) StartTransaction(ctx context.Context, name, op string) (*Span, error) {
	l, err := scope.LocalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return t.start(ctx, l, name, op, nil, observability.OperationStartTransaction), nil
}

// ContinueFromHeaders starts a transaction that continues the trace in a
// "{trace}-{span}[-{0|1}]" header. A malformed header is returned as an
// error and nothing is changed. Otherwise the isolation scope's propagation
// context takes over the inbound trace before sampling, so events keep the
// trace even when no transaction is recorded.
//
// An explicit "-0" decision yields an unsampled transaction rather than nil,
// so the decision is propagated to downstream services.
func (t *Tracer) ContinueFromHeaders(ctx context.Context, name, op, header string) (*Span, error) {
	l, err := scope.LocalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tc, err := propagation.TraceContextFromHeader(name, op, header)
	if err != nil {
		t.log.WarnWithContext(ctx, "rejected inbound trace header", err, map[string]interface{}{
			"header": header,
		})
		t.notify(observability.OperationContext{
			Operation: observability.OperationContinueTrace,
			Resource:  name,
			Error:     err,
		})
		return nil, err
	}

	l.SetTrace(*tc.TraceID, t.gen.SpanID(), tc.ParentSpanID)
	return t.start(ctx, l, name, op, &tc, observability.OperationContinueTrace), nil
}

// ContinueFromCarrier continues the trace found in carrier. The
// "sentry-trace" key is preferred, a W3C "traceparent" is used otherwise,
// and a new trace is started when neither is present. Keys are matched
// case-insensitively for "sentry-trace"; "traceparent" must be lower case.
func (t *Tracer) ContinueFromCarrier(ctx context.Context, name, op string, carrier map[string]string) (*Span, error) {
	if header, ok := lookup(carrier, propagation.SentryTraceHeader); ok {
		return t.ContinueFromHeaders(ctx, name, op, header)
	}
	if h, ok := propagation.ExtractW3C(carrier); ok {
		return t.ContinueFromHeaders(ctx, name, op, h.String())
	}
	return t.StartTransaction(ctx, name, op)
}

func (t *Tracer) start(ctx context.Context, l *scope.Local, name, op string, tc *propagation.TraceContext, operation string) *Span {
	c := l.Client()
	if c == nil || !c.IsActive() {
		t.log.DebugWithContext(ctx, "transaction not started: no active client", nil)
		t.notify(observability.OperationContext{
			Operation: operation,
			Resource:  name,
			Outcome:   observability.OutcomeSkipped,
		})
		return nil
	}

	opts := c.Options()
	if !opts.TracingEnabled() {
		return nil
	}

	if tc == nil {
		l.IsolationScope().RotateSpanID()
	}

	if *opts.SampleRate <= 0 && opts.TracesSampler == nil {
		t.notify(observability.OperationContext{
			Operation: operation,
			Resource:  name,
			Outcome:   observability.OutcomeSkipped,
		})
		return nil
	}

	tx := NewTransaction(name, op, t.clock, t.gen)
	if tc != nil {
		tx.traceID = *tc.TraceID
		if tc.ParentSpanID != nil {
			tx.upstream = propagation.SpanIDPtr(*tc.ParentSpanID)
		}
	}

	verdict := t.sampler.Sample(tx, opts, tc)
	tx.setSampled(verdict)

	fields := map[string]interface{}{
		"transaction": name,
		"op":          op,
		"trace_id":    tx.TraceID().String(),
		"sampled":     verdict.String(),
	}

	keep := verdict == propagation.SampledTrue || (tc != nil && tc.Sampled == propagation.SampledFalse)
	if !keep {
		t.log.DebugWithContext(ctx, "transaction dropped by sampler", nil, fields)
		t.notify(observability.OperationContext{
			Operation: operation,
			Resource:  name,
			Outcome:   observability.OutcomeDropped,
		})
		return nil
	}

	l.CurrentScope().SetSpan(tx)
	l.SetCurrentSpan(tx)

	outcome := observability.OutcomeSampled
	if verdict != propagation.SampledTrue {
		outcome = observability.OutcomeDropped
	}
	t.log.DebugWithContext(ctx, "transaction started", nil, fields)
	t.notify(observability.OperationContext{
		Operation: operation,
		Resource:  name,
		Outcome:   outcome,
		Metadata:  map[string]interface{}{"trace_id": fields["trace_id"]},
	})
	return tx
}

// FinishTransaction finishes tx, unbinds it from the scopes that still hold
// it and, if it is sampled, captures it as a transaction event. The current
// span is cleared in every case. Passing a child span logs a warning and
// does nothing.
func (t *Tracer) FinishTransaction(ctx context.Context, tx *Span) (event.ID, error) {
	l, err := scope.LocalFromContext(ctx)
	if err != nil {
		return "", err
	}
	if tx == nil {
		return "", nil
	}
	if !tx.IsTransaction() {
		t.log.WarnWithContext(ctx, "finish transaction called with a child span", ErrNotTransaction, map[string]interface{}{
			"op": tx.Op(),
		})
		return "", nil
	}

	defer l.ClearCurrentSpan()

	tx.Finish()
	l.ReleaseSpan(tx)

	if tx.Sampled() != propagation.SampledTrue {
		t.notify(observability.OperationContext{
			Operation: observability.OperationFinishTransaction,
			Resource:  tx.Name(),
			Outcome:   observability.OutcomeDropped,
			Duration:  tx.Duration(),
		})
		return "", nil
	}

	id, err := l.CaptureEvent(tx.ToEvent())
	t.notify(observability.OperationContext{
		Operation: observability.OperationFinishTransaction,
		Resource:  tx.Name(),
		Duration:  tx.Duration(),
		Error:     err,
	})
	if err != nil {
		t.log.WarnWithContext(ctx, "transaction not captured", err, map[string]interface{}{
			"transaction": tx.Name(),
		})
		return "", err
	}
	return id, nil
}

// StartSpan starts a child of the current span and makes it current. It
// returns nil, without error, when there is no current span or the current
// span is not sampled.
func (t *Tracer) StartSpan(ctx context.Context, op, description string) (*Span, error) {
	l, err := scope.LocalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	current, ok := l.CurrentSpan().(*Span)
	if !ok || current == nil || current.Sampled() != propagation.SampledTrue {
		t.notify(observability.OperationContext{
			Operation: observability.OperationStartSpan,
			Resource:  op,
			Outcome:   observability.OutcomeSkipped,
		})
		return nil, nil
	}

	child := current.StartChild(op)
	if description != "" {
		child.SetDescription(description)
	}
	l.SetCurrentSpan(child)
	t.notify(observability.OperationContext{
		Operation: observability.OperationStartSpan,
		Resource:  op,
	})
	return child, nil
}

// FinishSpan finishes a child span and, if it is still the current span,
// makes its parent current again. A transaction is handed to
// FinishTransaction.
func (t *Tracer) FinishSpan(ctx context.Context, span *Span) error {
	l, err := scope.LocalFromContext(ctx)
	if err != nil {
		return err
	}
	if span == nil {
		return nil
	}
	if span.IsTransaction() {
		_, err := t.FinishTransaction(ctx, span)
		return err
	}

	span.Finish()
	if cur, ok := l.CurrentSpan().(*Span); ok && cur == span {
		l.SetCurrentSpan(span.Parent())
	}
	t.notify(observability.OperationContext{
		Operation: observability.OperationFinishSpan,
		Resource:  span.Op(),
		Duration:  span.Duration(),
	})
	return nil
}

// CurrentSpan returns the current span of ctx's Local, or nil.
func (t *Tracer) CurrentSpan(ctx context.Context) (*Span, error) {
	l, err := scope.LocalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	span, _ := l.CurrentSpan().(*Span)
	return span, nil
}

// TraceHeader returns the outgoing header: the current span's, sampled
// suffix included, or the isolation scope's two-part fallback.
func (t *Tracer) TraceHeader(ctx context.Context) (string, error) {
	h, err := t.outgoing(ctx)
	if err != nil {
		return "", err
	}
	return h.String(), nil
}

// InjectCarrier writes the outgoing trace into carrier under
// "sentry-trace" and as a W3C "traceparent".
func (t *Tracer) InjectCarrier(ctx context.Context, carrier map[string]string) error {
	h, err := t.outgoing(ctx)
	if err != nil {
		return err
	}
	carrier[propagation.SentryTraceHeader] = h.String()
	propagation.InjectW3C(carrier, h)
	return nil
}

func (t *Tracer) outgoing(ctx context.Context) (propagation.TraceHeader, error) {
	l, err := scope.LocalFromContext(ctx)
	if err != nil {
		return propagation.TraceHeader{}, err
	}
	if span := l.CurrentSpan(); span != nil {
		return span.TraceHeader(), nil
	}
	p := l.IsolationScope().PropagationContext()
	return propagation.TraceHeader{TraceID: p.TraceID, SpanID: p.SpanID}, nil
}

func (t *Tracer) notify(ctx observability.OperationContext) {
	ctx.Component = observability.ComponentTracing
	observability.Notify(t.observer, ctx)
}

func lookup(carrier map[string]string, key string) (string, bool) {
	if v, ok := carrier[key]; ok && v != "" {
		return v, true
	}
	for k, v := range carrier {
		if v != "" && strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}
