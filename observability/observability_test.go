package observability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aalemi-dev/scopekit/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	calls []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	r.calls = append(r.calls, ctx)
}

func TestResolvedOutcome(t *testing.T) {
	t.Parallel()
	assert.Equal(t, observability.OutcomeSuccess, observability.OperationContext{}.ResolvedOutcome())
	assert.Equal(t, observability.OutcomeError, observability.OperationContext{Error: errors.New("x")}.ResolvedOutcome())
	assert.Equal(t, observability.OutcomeDropped, observability.OperationContext{
		Outcome: observability.OutcomeDropped,
		Error:   errors.New("ignored"),
	}.ResolvedOutcome())
}

func TestNoOpObserver(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		observability.NewNoOpObserver().ObserveOperation(observability.OperationContext{
			Component: observability.ComponentScope,
			Operation: observability.OperationCaptureEvent,
		})
	})
}

func TestNotify_NilObserver(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		observability.Notify(nil, observability.OperationContext{})
	})
}

func TestNotify_Forwards(t *testing.T) {
	t.Parallel()
	rec := &recordingObserver{}
	observability.Notify(rec, observability.OperationContext{
		Component: observability.ComponentTracing,
		Operation: observability.OperationFinishSpan,
		Duration:  10 * time.Millisecond,
	})

	require.Len(t, rec.calls, 1)
	assert.Equal(t, observability.OperationFinishSpan, rec.calls[0].Operation)
	assert.Equal(t, 10*time.Millisecond, rec.calls[0].Duration)
}

func TestMulti(t *testing.T) {
	t.Parallel()
	first, second := &recordingObserver{}, &recordingObserver{}
	var fnCalls int
	obs := observability.Multi(first, nil, second, observability.ObserverFunc(func(observability.OperationContext) {
		fnCalls++
	}))

	obs.ObserveOperation(observability.OperationContext{Component: observability.ComponentScope})

	assert.Len(t, first.calls, 1)
	assert.Len(t, second.calls, 1)
	assert.Equal(t, 1, fnCalls)
}
