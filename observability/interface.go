package observability

import "time"

// Observer receives a notification each time a scope or tracing operation
// completes. Implementations must be safe for concurrent use and must not
// block; they run inline on the caller's goroutine.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// Components reporting operations.
const (
	ComponentScope   = "scope"
	ComponentTracing = "tracing"
	ComponentClient  = "client"
)

// Operations reported by the scope and tracing packages.
const (
	OperationCaptureEvent      = "capture_event"
	OperationStartTransaction  = "start_transaction"
	OperationContinueTrace     = "continue_trace"
	OperationFinishTransaction = "finish_transaction"
	OperationStartSpan         = "start_span"
	OperationFinishSpan        = "finish_span"
	OperationWithScope         = "with_scope"
)

// Outcomes recorded in OperationContext.Outcome.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	// OutcomeSampled and OutcomeDropped describe tracing decisions.
	OutcomeSampled = "sampled"
	OutcomeDropped = "dropped"
	// OutcomeSkipped means the operation did nothing, e.g. no client bound.
	OutcomeSkipped = "skipped"
)

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the reporting package, one of the Component* constants.
	Component string

	// Operation is one of the Operation* constants.
	Operation string

	// Resource names the subject: a transaction name, a span op, or an
	// event type.
	Resource string

	// Outcome classifies the result. When empty, it is derived from Error.
	Outcome string

	// Duration is the wall time of the operation; for finished spans it is
	// the span duration.
	Duration time.Duration

	// Error is the error returned to the caller, if any.
	Error error

	// Metadata carries optional extra detail such as the trace id.
	Metadata map[string]interface{}
}

// ResolvedOutcome returns Outcome, or a value derived from Error when
// Outcome is empty.
func (c OperationContext) ResolvedOutcome() string {
	if c.Outcome != "" {
		return c.Outcome
	}
	if c.Error != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
