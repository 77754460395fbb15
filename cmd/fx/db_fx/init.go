package db_fx

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"feedbackflow/internal/config"
	"feedbackflow/internal/infra"
	"feedbackflow/internal/repositories"
)

// Module picks the storage backend once, at startup, from STORAGE_BACKEND.
var Module = fx.Provide(provideFeedbackRepo)

func provideFeedbackRepo(lc fx.Lifecycle, cfg *config.Config) (repositories.FeedbackRepositoryInterface, error) {
	log.Info().Str("backend", cfg.Storage.Backend).Msg("Selecting feedback storage")

	switch cfg.Storage.Backend {
	case config.BackendFile:
		return repositories.NewFeedbackFileRepository(cfg.Storage.DataFile), nil

	case config.BackendMongo:
		// No connection here: the first request dials and caches it.
		conn := infra.NewMongoConnector(cfg.Mongo)
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return conn.Close(ctx)
			},
		})
		return repositories.NewFeedbackMongoRepository(conn), nil

	case config.BackendPostgres:
		db, err := infra.InitPostgresql(cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				infra.ClosePostgresql(db)
				return nil
			},
		})
		return repositories.NewFeedbackGormRepository(db), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
