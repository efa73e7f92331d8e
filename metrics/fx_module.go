package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/aalemi-dev/scopekit/logger"
	"github.com/aalemi-dev/scopekit/observability"
	"go.uber.org/fx"
)

// FXModule provides *Metrics, the Collector interface and an
// observability.Observer backed by it, and runs the HTTP endpoint for the
// application's lifetime. A metrics.Config must be in the container.
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{ServiceName: "checkout"}
//	    }),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) Collector { return m },
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics server in the background on
// start and shuts it down on stop. It does nothing when the server is
// disabled.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.LoggerClient) {
	if m.Server == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down metrics server", nil, nil)
			if err := m.Server.Shutdown(ctx); err != nil {
				log.Error("error shutting down metrics server", err, nil)
				return err
			}
			return nil
		},
	})
}
