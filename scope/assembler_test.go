package scope

import (
	"testing"

	"github.com/aalemi-dev/scopekit/event"
	"github.com/aalemi-dev/scopekit/propagation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyToEvent_LevelEventWins(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	s.SetLevel(event.LevelError)

	e := event.New()
	e.Level = event.LevelWarning
	s.ApplyToEvent(e)
	assert.Equal(t, event.LevelWarning, e.Level)

	e = event.New()
	s.ApplyToEvent(e)
	assert.Equal(t, event.LevelError, e.Level)
}

func TestApplyToEvent_DefaultLevelNotWritten(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	e := event.New()
	s.ApplyToEvent(e)
	assert.Empty(t, e.Level)
}

func TestApplyToEvent_TagsUnion(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	s.SetTag("scope", "s")
	s.SetTag("both", "scope")

	e := event.New()
	e.Tags = map[string]string{"event": "e", "both": "event"}
	s.ApplyToEvent(e)

	assert.Equal(t, map[string]string{"scope": "s", "event": "e", "both": "event"}, e.Tags)
}

func TestApplyToEvent_UserAndFingerprint(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	s.SetUser(&event.User{ID: "scope"})
	s.SetFingerprint([]string{"scope"})

	e := event.New()
	s.ApplyToEvent(e)
	require.NotNil(t, e.User)
	assert.Equal(t, "scope", e.User.ID)
	assert.Equal(t, []string{"scope"}, e.Fingerprint)

	e = event.New()
	e.User = &event.User{ID: "event"}
	e.Fingerprint = []string{"event"}
	s.ApplyToEvent(e)
	assert.Equal(t, "event", e.User.ID)
	assert.Equal(t, []string{"event"}, e.Fingerprint)
}

func TestApplyToEvent_BreadcrumbsConcatenated(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	s.AddBreadcrumb(crumb("scope-1"))
	s.AddBreadcrumb(crumb("scope-2"))

	e := event.New()
	e.Breadcrumbs = []event.Breadcrumb{{Message: "event-1"}}
	s.ApplyToEvent(e)

	require.Len(t, e.Breadcrumbs, 3)
	assert.Equal(t, "event-1", e.Breadcrumbs[0].Message)
	assert.Equal(t, "scope-1", e.Breadcrumbs[1].Message)
	assert.Equal(t, "scope-2", e.Breadcrumbs[2].Message)
}

func TestApplyToEvent_ContextEventWinsByKey(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	s.SetContext("os", event.Context{"name": "linux", "version": "6"})
	s.SetContext("app", event.Context{"name": "checkout"})

	e := event.New()
	e.Contexts = map[string]event.Context{"os": {"name": "darwin"}}
	s.ApplyToEvent(e)

	assert.Equal(t, event.Context{"name": "darwin"}, e.Contexts["os"])
	assert.Equal(t, "checkout", e.Contexts["app"]["name"])
}

func TestApplyToEvent_ValuesAreCopies(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	s.SetContext("app", event.Context{"name": "checkout"})
	s.SetUser(&event.User{ID: "u"})

	e := event.New()
	s.ApplyToEvent(e)
	e.Contexts["app"]["name"] = "changed"
	e.User.ID = "changed"

	assert.Equal(t, "checkout", s.Contexts()["app"]["name"])
	assert.Equal(t, "u", s.User().ID)
}

func TestApplyToEvent_PropagationFallback(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	parent := propagation.NewSpanID()
	s.SetTrace(propagation.NewTraceID(), propagation.NewSpanID(), &parent)
	p := s.PropagationContext()

	e := event.New()
	s.ApplyToEvent(e)

	require.NotNil(t, e.TraceID)
	require.NotNil(t, e.SpanID)
	require.NotNil(t, e.ParentSpanID)
	assert.Equal(t, p.TraceID, *e.TraceID)
	assert.Equal(t, p.SpanID, *e.SpanID)
	assert.Equal(t, parent, *e.ParentSpanID)
}

func TestApplyToEvent_ActiveSpan(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	span := newFakeSpan()
	s.SetSpan(span)

	e := event.New()
	s.ApplyToEvent(e)

	require.NotNil(t, e.TraceID)
	assert.Equal(t, span.traceID, *e.TraceID)
	require.NotNil(t, e.SpanID)
	assert.NotEqual(t, span.spanID, *e.SpanID)
	require.NotNil(t, e.ParentSpanID)
	assert.Equal(t, span.spanID, *e.ParentSpanID)
}

func TestApplyToEvent_TraceIDOnEventWins(t *testing.T) {
	t.Parallel()
	s := NewScope(Config{})
	s.SetSpan(newFakeSpan())

	traceID := propagation.NewTraceID()
	e := event.New()
	e.TraceID = &traceID
	s.ApplyToEvent(e)

	assert.Equal(t, traceID, *e.TraceID)
	assert.Nil(t, e.SpanID)
	assert.Nil(t, e.ParentSpanID)
}

func TestApplyToEvent_Nil(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { NewScope(Config{}).ApplyToEvent(nil) })
}

func TestApplySpan_KeepsExistingTrace(t *testing.T) {
	t.Parallel()
	span := newFakeSpan()
	gen := propagation.NewGenerator(propagation.NewSeededSource())

	e := event.New()
	ApplySpan(e, span, gen)
	require.NotNil(t, e.SpanID)
	assert.False(t, e.SpanID.IsNil())

	before := *e.SpanID
	ApplySpan(e, newFakeSpan(), gen)
	assert.Equal(t, before, *e.SpanID)

	assert.NotPanics(t, func() { ApplySpan(nil, span, nil) })
	assert.NotPanics(t, func() { ApplySpan(event.New(), nil, nil) })
}
