package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"feedbackflow/cmd/fx/config_fx"
	"feedbackflow/cmd/fx/controllers_fx"
	"feedbackflow/cmd/fx/db_fx"
	"feedbackflow/cmd/fx/feedback_fx"
	"feedbackflow/internal/api/controllers"
	"feedbackflow/internal/config"
	"feedbackflow/pkg/metrics"
	"feedbackflow/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		feedback_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("HTTP server stopped unexpectedly")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	feedbackController *controllers.FeedbackController,
	healthController *controllers.HealthController,
	staticController *controllers.StaticController) *gin.Engine {

	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	r.Use(metrics.GinMiddleware())

	RegisterRoutes(r, feedbackController, healthController, staticController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	feedbackController *controllers.FeedbackController,
	healthController *controllers.HealthController,
	staticController *controllers.StaticController) {

	r.POST("/submit", feedbackController.SubmitFeedback)
	r.GET("/feedbacks", feedbackController.ListFeedbacks)

	r.GET("/health", healthController.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(staticController.Serve)
}
