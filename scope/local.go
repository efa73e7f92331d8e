package scope

import (
	"sync"
	"time"

	"github.com/aalemi-dev/scopekit/client"
	"github.com/aalemi-dev/scopekit/event"
	"github.com/aalemi-dev/scopekit/observability"
	"github.com/aalemi-dev/scopekit/propagation"
)

// Local is the per-execution scope state: the isolation scope, the stack of
// current scopes pushed by scoped blocks, and the current span.
//
// A Local belongs to one logical execution, typically one request. Scoped
// blocks must be strictly nested; pushing and closing guards from several
// goroutines at once is not supported. Reads through a context shared with
// child goroutines are safe.
type Local struct {
	mgr *Manager

	mu        sync.Mutex
	isolation *Scope
	stack     []*Scope
	span      SpanRef
}

// Manager returns the manager that created l.
func (l *Local) Manager() *Manager {
	return l.mgr
}

// GlobalScope returns the manager's global scope.
func (l *Local) GlobalScope() *Scope {
	return l.mgr.GlobalScope()
}

// IsolationScope returns the isolation scope, creating it empty on first
// use.
func (l *Local) IsolationScope() *Scope {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isolationLocked()
}

func (l *Local) isolationLocked() *Scope {
	if l.isolation == nil {
		l.isolation = l.mgr.NewScope()
	}
	return l.isolation
}

// CurrentScope returns the innermost pushed scope, or the isolation scope
// when none is pushed.
func (l *Local) CurrentScope() *Scope {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentLocked()
}

func (l *Local) currentLocked() *Scope {
	if n := len(l.stack); n > 0 {
		return l.stack[n-1]
	}
	return l.isolationLocked()
}

// Chain returns the scopes consulted at capture time in precedence order:
// current, isolation, global. A scope appears once even when it fills two
// roles.
func (l *Local) Chain() []*Scope {
	l.mu.Lock()
	current := l.currentLocked()
	isolation := l.isolation
	l.mu.Unlock()

	chain := []*Scope{current}
	if isolation != current {
		chain = append(chain, isolation)
	}
	if global := l.mgr.GlobalScope(); global != current && global != isolation {
		chain = append(chain, global)
	}
	return chain
}

// PushScope forks the current scope and makes the fork current until the
// returned guard is closed.
//
//	g := local.PushScope()
//	defer g.Close()
//	g.Scope().SetTag("job", "reindex")
func (l *Local) PushScope() *Guard {
	l.mu.Lock()
	defer l.mu.Unlock()
	fork := l.currentLocked().Fork()
	l.stack = append(l.stack, fork)
	return &Guard{
		local: l,
		kind:  guardScope,
		scope: fork,
		depth: len(l.stack),
		start: l.mgr.clock.Now(),
	}
}

// PushIsolationScope replaces the isolation scope with a fresh empty one
// until the returned guard is closed.
func (l *Local) PushIsolationScope() *Guard {
	l.mu.Lock()
	defer l.mu.Unlock()
	fresh := l.mgr.NewScope()
	g := &Guard{
		local: l,
		kind:  guardIsolation,
		scope: fresh,
		prev:  l.isolation,
		start: l.mgr.clock.Now(),
	}
	l.isolation = fresh
	return g
}

// WithScope runs fn with a fork of the current scope as the current scope.
// The previous scope is restored when fn returns or panics.
func (l *Local) WithScope(fn func(s *Scope)) {
	g := l.PushScope()
	defer g.Close()
	fn(g.Scope())
}

// WithIsolationScope runs fn with a fresh empty isolation scope. The
// previous isolation scope is restored when fn returns or panics.
func (l *Local) WithIsolationScope(fn func(s *Scope)) {
	g := l.PushIsolationScope()
	defer g.Close()
	fn(g.Scope())
}

// ConfigureScope runs fn against the isolation scope itself, so changes
// persist.
func (l *Local) ConfigureScope(fn func(s *Scope)) {
	fn(l.IsolationScope())
}

// SetTag sets a tag on the isolation scope.
func (l *Local) SetTag(key, value string) {
	l.IsolationScope().SetTag(key, value)
}

// SetUser sets the user on the isolation scope.
func (l *Local) SetUser(user *event.User) {
	l.IsolationScope().SetUser(user)
}

// SetLevel sets the level on the isolation scope.
func (l *Local) SetLevel(level event.Level) {
	l.IsolationScope().SetLevel(level)
}

// SetContext sets a named context on the isolation scope.
func (l *Local) SetContext(key string, value event.Context) {
	l.IsolationScope().SetContext(key, value)
}

// AddBreadcrumb adds a breadcrumb to the isolation scope.
func (l *Local) AddBreadcrumb(b event.Breadcrumb) {
	l.IsolationScope().AddBreadcrumb(b)
}

// SetTrace overwrites the isolation scope's propagation context.
func (l *Local) SetTrace(traceID propagation.TraceID, spanID propagation.SpanID, parentSpanID *propagation.SpanID) {
	l.IsolationScope().SetTrace(traceID, spanID, parentSpanID)
}

// CurrentSpan returns the current span, or nil.
func (l *Local) CurrentSpan() SpanRef {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.span
}

// SetCurrentSpan replaces the current span.
func (l *Local) SetCurrentSpan(span SpanRef) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.span = span
}

// ClearCurrentSpan unsets the current span.
func (l *Local) ClearCurrentSpan() {
	l.SetCurrentSpan(nil)
}

// Client returns the first client bound in the chain, or nil.
func (l *Local) Client() client.Client {
	for _, s := range l.Chain() {
		if c := s.Client(); c != nil {
			return c
		}
	}
	return nil
}

// ReleaseSpan clears span from the active-span slot of every local scope
// that still points at it.
func (l *Local) ReleaseSpan(span SpanRef) {
	l.mu.Lock()
	scopes := append([]*Scope(nil), l.stack...)
	if l.isolation != nil {
		scopes = append(scopes, l.isolation)
	}
	l.mu.Unlock()

	for _, s := range scopes {
		s.ReleaseSpan(span)
	}
}

// TraceHeader returns the outgoing header: the current span's three-part
// header, or the isolation scope's two-part fallback.
func (l *Local) TraceHeader() string {
	if span := l.CurrentSpan(); span != nil {
		return span.TraceHeader().String()
	}
	return l.IsolationScope().PropagationContext().TraceHeader()
}

// TraceFields implements logger.TraceSource.
func (l *Local) TraceFields() (traceID, spanID string) {
	if span := l.CurrentSpan(); span != nil {
		return span.TraceID().String(), span.SpanID().String()
	}
	p := l.IsolationScope().PropagationContext()
	return p.TraceID.String(), p.SpanID.String()
}

// ApplyToEvent applies the whole chain to e, current scope first so that
// inner scopes win over outer ones.
func (l *Local) ApplyToEvent(e *event.Event) {
	seen := make(map[uint64]struct{})
	for _, s := range l.Chain() {
		s.applyToEvent(e, seen)
	}
}

// CaptureEvent applies the chain to e and hands it to the first bound
// client. It fails with ErrNoClient when no active client is bound and with
// ErrEventDropped when the client rejects the event.
func (l *Local) CaptureEvent(e *event.Event) (event.ID, error) {
	start := l.mgr.clock.Now()
	c := l.Client()
	if c == nil || !c.IsActive() {
		l.mgr.log.Debug("event not captured: no active client", nil)
		l.mgr.notify(observability.OperationContext{
			Operation: observability.OperationCaptureEvent,
			Resource:  eventResource(e),
			Outcome:   observability.OutcomeSkipped,
		})
		return "", ErrNoClient
	}

	l.ApplyToEvent(e)
	id, ok := c.CaptureEvent(e)

	var err error
	if !ok {
		err = ErrEventDropped
	}
	l.mgr.notify(observability.OperationContext{
		Operation: observability.OperationCaptureEvent,
		Resource:  eventResource(e),
		Duration:  l.mgr.clock.Since(start),
		Error:     err,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// CaptureMessage captures a message event at level.
func (l *Local) CaptureMessage(msg string, level event.Level) (event.ID, error) {
	return l.CaptureEvent(event.NewMessage(msg, level))
}

// CaptureError captures an error event describing err and its wrapped
// chain.
func (l *Local) CaptureError(err error) (event.ID, error) {
	return l.CaptureEvent(event.FromError(err))
}

func eventResource(e *event.Event) string {
	if e != nil && e.Type != "" {
		return e.Type
	}
	return "event"
}

type guardKind int

const (
	guardScope guardKind = iota
	guardIsolation
)

// Guard restores the state replaced by PushScope or PushIsolationScope.
// Close is idempotent.
type Guard struct {
	local  *Local
	kind   guardKind
	scope  *Scope
	prev   *Scope
	depth  int
	start  time.Time
	closed bool
}

// Scope returns the scope installed by the guard.
func (g *Guard) Scope() *Scope {
	return g.scope
}

// Close restores the previous state. Closing a scope guard that is not the
// innermost also discards every scope pushed after it.
func (g *Guard) Close() {
	if g == nil || g.closed {
		return
	}
	g.closed = true
	l := g.local

	l.mu.Lock()
	outOfOrder := false
	switch g.kind {
	case guardScope:
		if len(l.stack) != g.depth {
			outOfOrder = true
		}
		if len(l.stack) >= g.depth {
			for i := g.depth - 1; i < len(l.stack); i++ {
				l.stack[i] = nil
			}
			l.stack = l.stack[:g.depth-1]
		}
	case guardIsolation:
		if l.isolation != g.scope {
			outOfOrder = true
		}
		l.isolation = g.prev
	}
	l.mu.Unlock()

	if outOfOrder {
		l.mgr.log.Warn("scope guard closed out of order", nil)
	}
	l.mgr.notify(observability.OperationContext{
		Operation: observability.OperationWithScope,
		Duration:  l.mgr.clock.Since(g.start),
	})
}
