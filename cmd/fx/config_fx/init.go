package config_fx

import (
	"go.uber.org/fx"

	"feedbackflow/internal/config"
	"feedbackflow/pkg/logging"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Invoke(initLogger),
)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(cfg *config.Config) {
	logging.Init("feedbackflow", cfg.Log.Env, cfg.Log.Level)
}
