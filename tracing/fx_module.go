package tracing

import (
	"github.com/aalemi-dev/scopekit/logger"
	"github.com/aalemi-dev/scopekit/observability"
	"github.com/aalemi-dev/scopekit/scope"
	"go.uber.org/fx"
)

// TracerParams are the dependencies of the fx-provided Tracer.
type TracerParams struct {
	fx.In

	Manager  *scope.Manager
	Logger   *logger.LoggerClient
	Observer observability.Observer `optional:"true"`
}

// NewTracerFromParams builds a Tracer from fx dependencies.
func NewTracerFromParams(p TracerParams) (*Tracer, error) {
	return NewTracer(p.Manager, p.Logger, WithObserver(p.Observer))
}

// FXModule provides the *Tracer. It needs scope.FXModule (or another
// *scope.Manager provider) and a *logger.LoggerClient.
//
//	app := fx.New(
//	    logger.FXModule,
//	    client.FXModule,
//	    scope.FXModule,
//	    tracing.FXModule,
//	    ...
//	)
var FXModule = fx.Module("tracing",
	fx.Provide(NewTracerFromParams),
)
