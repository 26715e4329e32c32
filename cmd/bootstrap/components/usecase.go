package components

import (
	"eventcast/internal/infra/metrics"
	"eventcast/internal/pkg/clock"
	"eventcast/internal/usecase/commands"
	"eventcast/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		metrics.NewRecorder,
		fx.As(new(commands.MetricsRecorder)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewDistributionCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewDistributionQueries,
	),
)
