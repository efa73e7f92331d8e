package scope

import (
	"sync"
	"sync/atomic"

	"github.com/aalemi-dev/scopekit/client"
	"github.com/aalemi-dev/scopekit/event"
	"github.com/aalemi-dev/scopekit/propagation"
	"github.com/zoobzio/clockz"
)

// DefaultBreadcrumbType is written onto breadcrumbs added without a type.
const DefaultBreadcrumbType = "default"

// crumbSeq numbers every stored breadcrumb process-wide. A fork keeps the
// numbers of what it copied, so a chain of related scopes reports each
// breadcrumb once.
var crumbSeq atomic.Uint64

type storedCrumb struct {
	seq   uint64
	crumb event.Breadcrumb
}

// Scope holds ambient diagnostic data that is applied to events at capture
// time. Every value a Scope owns is copied on the way in and on the way out;
// callers never share memory with it.
//
// A Scope is safe for concurrent use.
type Scope struct {
	mu sync.RWMutex

	level       event.Level
	tags        map[string]string
	user        *event.User
	fingerprint []string
	breadcrumbs []storedCrumb
	contexts    map[string]event.Context
	propagation propagation.PropagationContext
	client      client.Client
	span        SpanRef

	maxBreadcrumbs int
	clock          clockz.Clock
	gen            *propagation.Generator
}

// NewScope returns an empty scope with a fresh propagation context.
func NewScope(cfg Config) *Scope {
	return newScope(cfg.maxBreadcrumbs(), clockz.RealClock, propagation.DefaultGenerator())
}

func newScope(maxBreadcrumbs int, clock clockz.Clock, gen *propagation.Generator) *Scope {
	return &Scope{
		level:          event.DefaultLevel,
		tags:           make(map[string]string),
		contexts:       make(map[string]event.Context),
		propagation:    gen.PropagationContext(),
		maxBreadcrumbs: maxBreadcrumbs,
		clock:          clock,
		gen:            gen,
	}
}

// SetLevel sets the level applied to events that carry none.
func (s *Scope) SetLevel(level event.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
}

// Level returns the scope level.
func (s *Scope) Level() event.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// SetTag upserts a tag.
func (s *Scope) SetTag(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[key] = value
}

// RemoveTag deletes one tag.
func (s *Scope) RemoveTag(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tags, key)
}

// RemoveTags deletes every tag.
func (s *Scope) RemoveTags() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = make(map[string]string)
}

// Tags returns a copy of the tags.
func (s *Scope) Tags() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return event.CloneTags(s.tags)
}

// SetUser replaces the user. A nil user clears it.
func (s *Scope) SetUser(user *event.User) {
	u := user.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// User returns a copy of the user, or nil.
func (s *Scope) User() *event.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// SetFingerprint replaces the fingerprint. An empty list clears it.
func (s *Scope) SetFingerprint(items []string) {
	var fp []string
	if len(items) > 0 {
		fp = append([]string(nil), items...)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fingerprint = fp
}

// Fingerprint returns a copy of the fingerprint.
func (s *Scope) Fingerprint() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fingerprint == nil {
		return nil
	}
	return append([]string(nil), s.fingerprint...)
}

// AddBreadcrumb stores a copy of b. A zero timestamp is set from the scope
// clock, an empty level becomes info and an empty type becomes "default".
// When the buffer is full the oldest breadcrumb is evicted.
func (s *Scope) AddBreadcrumb(b event.Breadcrumb) {
	c := b.Clone()
	if c.Timestamp.IsZero() {
		c.Timestamp = s.clock.Now().UTC()
	}
	if c.Level == "" {
		c.Level = event.LevelInfo
	}
	if c.Type == "" {
		c.Type = DefaultBreadcrumbType
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendCrumbLocked(storedCrumb{seq: crumbSeq.Add(1), crumb: c})
}

func (s *Scope) appendCrumbLocked(sc storedCrumb) {
	if len(s.breadcrumbs) >= s.maxBreadcrumbs {
		drop := len(s.breadcrumbs) - s.maxBreadcrumbs + 1
		s.breadcrumbs = append(s.breadcrumbs[:0], s.breadcrumbs[drop:]...)
	}
	s.breadcrumbs = append(s.breadcrumbs, sc)
}

// ClearBreadcrumbs empties the breadcrumb buffer.
func (s *Scope) ClearBreadcrumbs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breadcrumbs = nil
}

// Breadcrumbs returns copies of the stored breadcrumbs, oldest first.
func (s *Scope) Breadcrumbs() []event.Breadcrumb {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]event.Breadcrumb, len(s.breadcrumbs))
	for i, sc := range s.breadcrumbs {
		out[i] = sc.crumb.Clone()
	}
	return out
}

// SetContext replaces the named context with a copy of value.
func (s *Scope) SetContext(key string, value event.Context) {
	c := value.Clone()
	if c == nil {
		c = event.Context{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[key] = c
}

// RemoveContext deletes the named context.
func (s *Scope) RemoveContext(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, key)
}

// Contexts returns a copy of every context.
func (s *Scope) Contexts() map[string]event.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return event.CloneContexts(s.contexts)
}

// PropagationContext returns a copy of the propagation context.
func (s *Scope) PropagationContext() propagation.PropagationContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.propagation.Clone()
}

// SetPropagationContext replaces the propagation context.
func (s *Scope) SetPropagationContext(p propagation.PropagationContext) {
	c := p.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.propagation = c
}

// SetTrace overwrites the propagation context in place, typically from an
// inbound header when no span is created.
func (s *Scope) SetTrace(traceID propagation.TraceID, spanID propagation.SpanID, parentSpanID *propagation.SpanID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.propagation.UpdateFromTrace(traceID, spanID, parentSpanID)
}

// RotateSpanID keeps the trace id and draws a new span id for the
// propagation context, so that events without a span stay distinguishable.
func (s *Scope) RotateSpanID() propagation.PropagationContext {
	spanID := s.gen.SpanID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.propagation.SpanID = spanID
	return s.propagation.Clone()
}

// BindClient binds c to the scope. A nil c unbinds.
func (s *Scope) BindClient(c client.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = c
}

// Client returns the bound client, or nil.
func (s *Scope) Client() client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// SetSpan makes span the scope's active span.
func (s *Scope) SetSpan(span SpanRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.span = span
}

// Span returns the active span, or nil.
func (s *Scope) Span() SpanRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.span
}

// ClearSpan unsets the active span.
func (s *Scope) ClearSpan() {
	s.SetSpan(nil)
}

// ReleaseSpan unsets the active span only if it is span. It reports whether
// the slot was cleared.
func (s *Scope) ReleaseSpan(span SpanRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if span == nil || s.span != span {
		return false
	}
	s.span = nil
	return true
}

// TraceHeader returns the outgoing trace header: the active span's,
// sampled suffix included, or the two-part form built from the propagation
// context.
func (s *Scope) TraceHeader() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.span != nil {
		return s.span.TraceHeader().String()
	}
	return s.propagation.TraceHeader()
}

// Clear resets the scope data to an empty state. The bound client and the
// propagation context are kept.
func (s *Scope) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = event.DefaultLevel
	s.tags = make(map[string]string)
	s.user = nil
	s.fingerprint = nil
	s.breadcrumbs = nil
	s.contexts = make(map[string]event.Context)
	s.span = nil
}

// Fork returns an independent deep copy. The client and the active span are
// references and are shared, not copied.
func (s *Scope) Fork() *Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := &Scope{
		level:          s.level,
		tags:           event.CloneTags(s.tags),
		user:           s.user.Clone(),
		contexts:       event.CloneContexts(s.contexts),
		propagation:    s.propagation.Clone(),
		client:         s.client,
		span:           s.span,
		maxBreadcrumbs: s.maxBreadcrumbs,
		clock:          s.clock,
		gen:            s.gen,
	}
	if s.fingerprint != nil {
		f.fingerprint = append([]string(nil), s.fingerprint...)
	}
	if len(s.breadcrumbs) > 0 {
		f.breadcrumbs = make([]storedCrumb, len(s.breadcrumbs))
		for i, sc := range s.breadcrumbs {
			f.breadcrumbs[i] = storedCrumb{seq: sc.seq, crumb: sc.crumb.Clone()}
		}
	}
	return f
}

// Merge copies other into s with other taking precedence: its level and
// propagation context replace those of s, its tags overwrite same-named
// tags, its user replaces the user of s when set, and its breadcrumbs are
// appended subject to the cap.
func (s *Scope) Merge(other *Scope) {
	if other == nil {
		return
	}

	other.mu.RLock()
	level := other.level
	tags := event.CloneTags(other.tags)
	user := other.user.Clone()
	crumbs := make([]event.Breadcrumb, len(other.breadcrumbs))
	for i, sc := range other.breadcrumbs {
		crumbs[i] = sc.crumb.Clone()
	}
	prop := other.propagation.Clone()
	other.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
	for k, v := range tags {
		s.tags[k] = v
	}
	if user != nil {
		s.user = user
	}
	for _, c := range crumbs {
		s.appendCrumbLocked(storedCrumb{seq: crumbSeq.Add(1), crumb: c})
	}
	s.propagation = prop
}
