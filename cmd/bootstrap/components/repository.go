package components

import (
	repo_impl "eventcast/internal/infra/repository"
	"eventcast/internal/services/janitor"
	"eventcast/internal/usecase/commands"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewFingerprintRepository,
			fx.As(new(commands.FingerprintStore)),
			fx.As(new(janitor.FingerprintPruner)),
		),
	),
)
