package scope

import (
	"github.com/aalemi-dev/scopekit/event"
	"github.com/aalemi-dev/scopekit/propagation"
)

// ApplyToEvent writes the scope data into e. Values already on the event
// win:
//   - level is written only if e has none and the scope level is not the
//     default;
//   - tags are added for keys the event does not have;
//   - user and fingerprint are written only if unset on e;
//   - breadcrumbs are appended after the event's own;
//   - a context is written only if e has no context under that key;
//   - trace identifiers are written only if e has no trace id. Under an
//     active span the event gets the span's trace id, a new span id and the
//     span as parent; otherwise the propagation context is copied.
func (s *Scope) ApplyToEvent(e *event.Event) {
	s.applyToEvent(e, nil)
}

// applyToEvent skips breadcrumbs whose sequence number is in seen and adds
// the ones it writes, so a chain of forked scopes reports each breadcrumb
// once. A nil seen disables the check.
func (s *Scope) applyToEvent(e *event.Event, seen map[uint64]struct{}) {
	if e == nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if e.Level == "" && s.level != "" && s.level != event.DefaultLevel {
		e.Level = s.level
	}

	if len(s.tags) > 0 {
		if e.Tags == nil {
			e.Tags = make(map[string]string, len(s.tags))
		}
		for k, v := range s.tags {
			if _, ok := e.Tags[k]; !ok {
				e.Tags[k] = v
			}
		}
	}

	if e.User == nil && s.user != nil {
		e.User = s.user.Clone()
	}

	if len(e.Fingerprint) == 0 && len(s.fingerprint) > 0 {
		e.Fingerprint = append([]string(nil), s.fingerprint...)
	}

	for _, sc := range s.breadcrumbs {
		if seen != nil {
			if _, dup := seen[sc.seq]; dup {
				continue
			}
			seen[sc.seq] = struct{}{}
		}
		e.Breadcrumbs = append(e.Breadcrumbs, sc.crumb.Clone())
	}

	if len(s.contexts) > 0 {
		if e.Contexts == nil {
			e.Contexts = make(map[string]event.Context, len(s.contexts))
		}
		for k, v := range s.contexts {
			if _, ok := e.Contexts[k]; ok {
				continue
			}
			e.Contexts[k] = v.Clone()
		}
	}

	if e.TraceID == nil {
		if s.span != nil {
			ApplySpan(e, s.span, s.gen)
		} else {
			applyPropagation(e, s.propagation)
		}
	}
}

// ApplySpan stamps e as an event emitted under span: the span's trace id, a
// fresh span id from gen, and the span as parent. Events that already carry
// a trace id are left alone.
func ApplySpan(e *event.Event, span SpanRef, gen *propagation.Generator) {
	if e == nil || span == nil || e.TraceID != nil {
		return
	}
	if gen == nil {
		gen = propagation.DefaultGenerator()
	}
	traceID := span.TraceID()
	spanID := gen.SpanID()
	e.TraceID = &traceID
	e.SpanID = &spanID
	e.ParentSpanID = propagation.SpanIDPtr(span.SpanID())
}

func applyPropagation(e *event.Event, p propagation.PropagationContext) {
	traceID := p.TraceID
	spanID := p.SpanID
	e.TraceID = &traceID
	e.SpanID = &spanID
	e.ParentSpanID = nil
	if p.ParentSpanID != nil {
		e.ParentSpanID = propagation.SpanIDPtr(*p.ParentSpanID)
	}
}
