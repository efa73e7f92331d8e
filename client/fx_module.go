package client

import (
	"context"

	"github.com/aalemi-dev/scopekit/logger"
	"go.uber.org/fx"
)

// FXModule provides the LogClient and the Client interface. A client.Config
// must be available in the container; use LoadConfig to build it from the
// environment.
//
//	app := fx.New(
//	    logger.FXModule,
//	    client.FXModule,
//	    fx.Provide(client.LoadConfig),
//	)
var FXModule = fx.Module("client",
	fx.Provide(
		NewLogClient,
		func(c *LogClient) Client { return c },
	),
	fx.Invoke(RegisterClientLifecycle),
)

// RegisterClientLifecycle closes the client on stop and logs how many events
// it handled.
func RegisterClientLifecycle(lc fx.Lifecycle, c *LogClient, log *logger.LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			c.Close()
			log.Info("client closed", nil, map[string]interface{}{
				"captured": c.Captured(),
				"dropped":  c.Dropped(),
			})
			return nil
		},
	})
}
