package controllers_fx

import (
	"go.uber.org/fx"

	"feedbackflow/internal/api/controllers"
	"feedbackflow/internal/config"
)

var Module = fx.Options(
	fx.Provide(controllers.NewHealthController),
	fx.Provide(provideStaticController))

func provideStaticController(cfg *config.Config) *controllers.StaticController {
	return controllers.NewStaticController(cfg.Server.StaticDir)
}
