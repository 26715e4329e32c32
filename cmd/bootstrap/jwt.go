package bootstrap

import (
	"time"

	"eventcast/internal/handler/middleware"
	"eventcast/internal/pkg/config"
	"eventcast/internal/pkg/jwt"

	"go.uber.org/fx"
)

// Service tokens are minted out of band (deploy tooling, cron runners);
// the server only validates them.
const serviceTokenDuration = 24 * time.Hour

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewJWTService,
			fx.As(new(middleware.TokenValidator)),
		),
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.Auth.Secret, serviceTokenDuration)
}
