package bootstrap

import (
	"eventcast/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.ChannelModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.ServiceModule,
	components.HandlerModule,
)
