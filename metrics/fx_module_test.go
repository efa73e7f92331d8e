package metrics_test

import (
	"testing"

	"github.com/aalemi-dev/scopekit/logger"
	"github.com/aalemi-dev/scopekit/metrics"
	"github.com/aalemi-dev/scopekit/observability"
	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestFXModule_ProvidesMetrics(t *testing.T) {
	t.Parallel()
	var (
		m         *metrics.Metrics
		collector metrics.Collector
		observer  observability.Observer
	)

	app := fxtest.New(t,
		metrics.FXModule,
		fx.Provide(func() metrics.Config {
			return metrics.Config{
				Address:                  metrics.Ptr("127.0.0.1:0"),
				ServiceName:              "fx-test",
				DisableRuntimeCollectors: true,
			}
		}),
		fx.Provide(logger.NewNopLoggerClient),
		fx.Populate(&m, &collector, &observer),
	)

	app.RequireStart()
	defer app.RequireStop()

	assert.NotNil(t, m)
	assert.Same(t, m, collector)
	assert.Same(t, m, observer)
}

func TestFXModule_ServerDisabled(t *testing.T) {
	t.Parallel()
	var m *metrics.Metrics

	app := fxtest.New(t,
		metrics.FXModule,
		fx.Provide(func() metrics.Config {
			return metrics.Config{Address: metrics.Ptr(""), DisableRuntimeCollectors: true}
		}),
		fx.Provide(logger.NewNopLoggerClient),
		fx.Populate(&m),
	)

	app.RequireStart()
	app.RequireStop()

	assert.Nil(t, m.Server)
}
