package components

import (
	"context"

	"eventcast/internal/services/janitor"

	"go.uber.org/fx"
)

var ServiceModule = fx.Module("service",
	fx.Provide(
		janitor.New,
	),
	fx.Invoke(startJanitor),
)

func startJanitor(lc fx.Lifecycle, svc *janitor.Service) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return svc.Start()
		},
		OnStop: func(_ context.Context) error {
			svc.Stop()
			return nil
		},
	})
}
