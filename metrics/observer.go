package metrics

import (
	"github.com/aalemi-dev/scopekit/observability"
)

// ObserveOperation increments the operation counter, records the duration
// when one is reported, and counts sampling verdicts for transaction starts.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	outcome := ctx.ResolvedOutcome()
	m.operations.WithLabelValues(ctx.Component, ctx.Operation, outcome).Inc()

	if ctx.Duration > 0 {
		m.durations.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
	}

	switch ctx.Operation {
	case observability.OperationStartTransaction, observability.OperationContinueTrace:
		if outcome == observability.OutcomeSampled || outcome == observability.OutcomeDropped {
			m.spans.WithLabelValues(outcome).Inc()
		}
	}
}
