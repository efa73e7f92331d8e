package tracing

import (
	"sync"
	"time"

	"github.com/aalemi-dev/scopekit/event"
	"github.com/aalemi-dev/scopekit/propagation"
	"github.com/aalemi-dev/scopekit/scope"
	"github.com/zoobzio/clockz"
)

// Status is the outcome of a span.
type Status string

const (
	StatusUndefined          Status = ""
	StatusOK                 Status = "ok"
	StatusCancelled          Status = "cancelled"
	StatusUnknown            Status = "unknown"
	StatusInvalidArgument    Status = "invalid_argument"
	StatusDeadlineExceeded   Status = "deadline_exceeded"
	StatusNotFound           Status = "not_found"
	StatusAlreadyExists      Status = "already_exists"
	StatusPermissionDenied   Status = "permission_denied"
	StatusResourceExhausted  Status = "resource_exhausted"
	StatusFailedPrecondition Status = "failed_precondition"
	StatusAborted            Status = "aborted"
	StatusOutOfRange         Status = "out_of_range"
	StatusUnimplemented      Status = "unimplemented"
	StatusInternalError      Status = "internal_error"
	StatusUnavailable        Status = "unavailable"
	StatusDataLoss           Status = "data_loss"
	StatusUnauthenticated    Status = "unauthenticated"
)

// Source describes where a transaction name came from.
type Source string

const (
	SourceCustom    Source = "custom"
	SourceURL       Source = "url"
	SourceRoute     Source = "route"
	SourceView      Source = "view"
	SourceComponent Source = "component"
	SourceTask      Source = "task"
)

// DefaultOrigin is the origin of spans created through this package.
const DefaultOrigin = "manual"

const noParent = -1

// Recorder is the arena owning every span of one transaction. Spans refer
// to their parent by index into the arena. All span state of the tree is
// guarded by the recorder's mutex.
type Recorder struct {
	mu    sync.Mutex
	spans []*Span
	clock clockz.Clock
	gen   *propagation.Generator
}

func (r *Recorder) addLocked(s *Span) {
	s.rec = r
	s.index = len(r.spans)
	r.spans = append(r.spans, s)
}

// Len returns the number of recorded spans, the transaction included.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spans)
}

// Span is one timed operation. A span without a parent is a transaction;
// only transactions carry a name, a source and contexts.
type Span struct {
	rec    *Recorder
	index  int
	parent int

	traceID      propagation.TraceID
	spanID       propagation.SpanID
	parentSpanID *propagation.SpanID
	// upstream is the inbound span id a transaction continues from. It is
	// reported in the trace context but never stored as ParentSpanID.
	upstream *propagation.SpanID

	op          string
	description string
	name        string
	status      Status
	origin      string
	source      Source
	start       time.Time
	end         time.Time
	tags        map[string]string
	data        map[string]interface{}
	contexts    map[string]event.Context
	sampled     propagation.Sampled
}

// NewTransaction starts a transaction with a fresh trace id. A nil clock or
// generator selects the defaults.
func NewTransaction(name, op string, clock clockz.Clock, gen *propagation.Generator) *Span {
	if clock == nil {
		clock = clockz.RealClock
	}
	if gen == nil {
		gen = propagation.DefaultGenerator()
	}
	rec := &Recorder{clock: clock, gen: gen}
	s := &Span{
		parent:  noParent,
		traceID: gen.TraceID(),
		spanID:  gen.SpanID(),
		op:      op,
		name:    name,
		origin:  DefaultOrigin,
		source:  SourceCustom,
		start:   clock.Now().UTC(),
	}
	rec.mu.Lock()
	rec.addLocked(s)
	rec.mu.Unlock()
	return s
}

// StartChild starts a child span. The child inherits the trace id, the
// origin and the sampling decision, and is recorded in the same arena.
func (s *Span) StartChild(op string) *Span {
	r := s.rec
	r.mu.Lock()
	defer r.mu.Unlock()

	child := &Span{
		parent:       s.index,
		traceID:      s.traceID,
		spanID:       r.gen.SpanID(),
		parentSpanID: propagation.SpanIDPtr(s.spanID),
		op:           op,
		origin:       s.origin,
		sampled:      s.sampled,
		start:        r.clock.Now().UTC(),
	}
	r.addLocked(child)
	return child
}

// IsTransaction reports whether s is the root of its tree.
func (s *Span) IsTransaction() bool {
	return s.parent == noParent
}

// Transaction returns the root of the tree s belongs to.
func (s *Span) Transaction() *Span {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.rec.spans[0]
}

// Parent returns the parent span, or nil for a transaction.
func (s *Span) Parent() *Span {
	if s.parent == noParent {
		return nil
	}
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.rec.spans[s.parent]
}

// Recorder returns the arena s is recorded in.
func (s *Span) Recorder() *Recorder {
	return s.rec
}

// Spans returns every span recorded in the tree, the transaction first.
func (s *Span) Spans() []*Span {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return append([]*Span(nil), s.rec.spans...)
}

// TraceID returns the trace id.
func (s *Span) TraceID() propagation.TraceID {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.traceID
}

// SpanID returns the span id.
func (s *Span) SpanID() propagation.SpanID {
	return s.spanID
}

// ParentSpanID returns the parent span id. It is always nil for a
// transaction.
func (s *Span) ParentSpanID() *propagation.SpanID {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	if s.parentSpanID == nil {
		return nil
	}
	return propagation.SpanIDPtr(*s.parentSpanID)
}

// Sampled returns the sampling decision.
func (s *Span) Sampled() propagation.Sampled {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.sampled
}

func (s *Span) setSampled(v propagation.Sampled) {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.sampled = v
}

// Op returns the operation.
func (s *Span) Op() string {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.op
}

// Name returns the transaction name. It is empty for child spans.
func (s *Span) Name() string {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.name
}

// SetName renames a transaction. It does nothing on a child span.
func (s *Span) SetName(name string) {
	if !s.IsTransaction() {
		return
	}
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.name = name
}

// Source returns the transaction name source.
func (s *Span) Source() Source {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.source
}

// SetSource sets the transaction name source. It does nothing on a child
// span.
func (s *Span) SetSource(src Source) {
	if !s.IsTransaction() {
		return
	}
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.source = src
}

// SetContext sets a named context on a transaction. It does nothing on a
// child span.
func (s *Span) SetContext(key string, value event.Context) {
	if !s.IsTransaction() {
		return
	}
	c := value.Clone()
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	if s.contexts == nil {
		s.contexts = make(map[string]event.Context)
	}
	s.contexts[key] = c
}

// Description returns the description.
func (s *Span) Description() string {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.description
}

// SetDescription sets the description.
func (s *Span) SetDescription(d string) {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.description = d
}

// Status returns the status.
func (s *Span) Status() Status {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.status
}

// SetStatus sets the status.
func (s *Span) SetStatus(status Status) {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.status = status
}

// Origin returns the origin.
func (s *Span) Origin() string {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.origin
}

// SetOrigin sets the origin. Children started afterwards inherit it.
func (s *Span) SetOrigin(origin string) {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.origin = origin
}

// SetTag upserts a tag.
func (s *Span) SetTag(key, value string) {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	if s.tags == nil {
		s.tags = make(map[string]string)
	}
	s.tags[key] = value
}

// Tags returns a copy of the tags.
func (s *Span) Tags() map[string]string {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return event.CloneTags(s.tags)
}

// SetData upserts a data entry.
func (s *Span) SetData(key string, value interface{}) {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]interface{})
	}
	s.data[key] = value
}

// Data returns a copy of the data.
func (s *Span) Data() map[string]interface{} {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return event.CloneData(s.data)
}

// StartTime returns when the span started.
func (s *Span) StartTime() time.Time {
	return s.start
}

// EndTime returns when the span finished, or the zero time.
func (s *Span) EndTime() time.Time {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return s.end
}

// IsFinished reports whether Finish was called.
func (s *Span) IsFinished() bool {
	return !s.EndTime().IsZero()
}

// Duration returns end minus start, or zero for an unfinished span.
func (s *Span) Duration() time.Duration {
	end := s.EndTime()
	if end.IsZero() {
		return 0
	}
	return end.Sub(s.start)
}

// Finish records the end time. Only the first call has an effect.
func (s *Span) Finish() {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	if !s.end.IsZero() {
		return
	}
	s.end = s.rec.clock.Now().UTC()
}

// TraceHeader returns the outgoing header for s.
func (s *Span) TraceHeader() propagation.TraceHeader {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	return propagation.TraceHeader{
		TraceID: s.traceID,
		SpanID:  s.spanID,
		Sampled: s.sampled,
	}
}

// UpdateFromTraceHeader takes the trace id and, when present, the sampling
// decision from an inbound header. The header's span id becomes the parent
// span id of a child span; on a transaction it is kept only as the upstream
// reference. It should be called before children are started.
func (s *Span) UpdateFromTraceHeader(header string) error {
	h, err := propagation.ParseTraceHeader(header)
	if err != nil {
		return err
	}
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	s.traceID = h.TraceID
	if s.parent == noParent {
		s.upstream = propagation.SpanIDPtr(h.SpanID)
	} else {
		s.parentSpanID = propagation.SpanIDPtr(h.SpanID)
	}
	if h.Sampled.IsDefined() {
		s.sampled = h.Sampled
	}
	return nil
}

// ToEvent converts a transaction into a transaction event. The event gets
// the transaction's trace id, a new span id and the transaction as parent,
// a "trace" context describing the transaction, and one entry in Spans per
// recorded child. It returns nil for a child span.
func (s *Span) ToEvent() *event.Event {
	if !s.IsTransaction() {
		return nil
	}

	s.rec.mu.Lock()
	e := event.New()
	e.Type = event.TypeTransaction
	e.Transaction = s.name
	if e.Transaction == "" {
		e.Transaction = s.op
	}
	e.TransactionInfo = &event.TransactionInfo{Source: string(s.source)}
	e.StartTimestamp = s.start
	e.Timestamp = s.end
	if e.Timestamp.IsZero() {
		e.Timestamp = s.rec.clock.Now().UTC()
	}
	e.Tags = event.CloneTags(s.tags)
	e.Contexts = event.CloneContexts(s.contexts)
	if e.Contexts == nil {
		e.Contexts = make(map[string]event.Context, 1)
	}
	e.Contexts["trace"] = s.traceContextLocked()

	for _, child := range s.rec.spans[1:] {
		e.Spans = append(e.Spans, child.recordLocked())
	}
	gen := s.rec.gen
	s.rec.mu.Unlock()

	scope.ApplySpan(e, s, gen)
	return e
}

func (s *Span) traceContextLocked() event.Context {
	c := event.Context{
		"trace_id": s.traceID.String(),
		"span_id":  s.spanID.String(),
		"op":       s.op,
		"origin":   s.origin,
	}
	if s.status != StatusUndefined {
		c["status"] = string(s.status)
	}
	if s.description != "" {
		c["description"] = s.description
	}
	if s.upstream != nil {
		c["parent_span_id"] = s.upstream.String()
	}
	if len(s.data) > 0 {
		c["data"] = event.CloneData(s.data)
	}
	return c
}

func (s *Span) recordLocked() event.SpanRecord {
	r := event.SpanRecord{
		TraceID:        s.traceID,
		SpanID:         s.spanID,
		Op:             s.op,
		Description:    s.description,
		Status:         string(s.status),
		Origin:         s.origin,
		StartTimestamp: s.start,
		Timestamp:      s.end,
		Tags:           event.CloneTags(s.tags),
		Data:           event.CloneData(s.data),
	}
	if s.parentSpanID != nil {
		r.ParentSpanID = propagation.SpanIDPtr(*s.parentSpanID)
	}
	return r
}

var (
	_ scope.SpanRef = (*Span)(nil)
)
