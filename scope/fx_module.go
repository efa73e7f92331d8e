package scope

import (
	"context"

	"github.com/aalemi-dev/scopekit/client"
	"github.com/aalemi-dev/scopekit/logger"
	"github.com/aalemi-dev/scopekit/observability"
	"go.uber.org/fx"
)

// ManagerParams are the dependencies of the fx-provided Manager. Observer
// and Client are optional; when a Client is present it is bound to the
// global scope.
type ManagerParams struct {
	fx.In

	Config   Config
	Logger   *logger.LoggerClient
	Observer observability.Observer `optional:"true"`
	Client   client.Client          `optional:"true"`
}

// NewManagerFromParams builds a Manager from fx dependencies.
func NewManagerFromParams(p ManagerParams) *Manager {
	var opts []Option
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	m := NewManager(p.Config, p.Logger, opts...)
	if p.Client != nil {
		m.BindClient(p.Client)
	}
	return m
}

// FXModule provides the *Manager. A scope.Config and a *logger.LoggerClient
// must be in the container.
//
//	app := fx.New(
//	    logger.FXModule,
//	    client.FXModule,
//	    scope.FXModule,
//	    fx.Provide(client.LoadConfig, func() scope.Config { return scope.Config{} }),
//	)
var FXModule = fx.Module("scope",
	fx.Provide(NewManagerFromParams),
	fx.Invoke(RegisterManagerLifecycle),
)

// RegisterManagerLifecycle drops the global scope when the application
// stops.
func RegisterManagerLifecycle(lc fx.Lifecycle, m *Manager) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			m.ResetGlobal()
			m.log.Debug("global scope reset", nil)
			return nil
		},
	})
}
