package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Soubhagyabehera/easyapply/internal/api"
	"github.com/Soubhagyabehera/easyapply/internal/config"
	"github.com/Soubhagyabehera/easyapply/internal/docs"
	"github.com/Soubhagyabehera/easyapply/internal/events"
	"github.com/Soubhagyabehera/easyapply/internal/listing"
	"github.com/Soubhagyabehera/easyapply/internal/scheduler"
	"github.com/Soubhagyabehera/easyapply/internal/server"
	"github.com/Soubhagyabehera/easyapply/internal/telemetry"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newListingService(logger *zap.Logger, client api.Client, cfg *config.Config) *listing.Service {
	return listing.NewService(logger, client, cfg.PageSize)
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			api.NewClient,
			newListingService,
			docs.NewToolsClient,
			events.NewPublisher,
			scheduler.NewRefresher,
			server.New,
		),
		fx.Invoke(
			func(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
				if cfg.OTLPEndpoint == "" {
					return
				}
				shutdown, err := telemetry.InitTracer(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint)
				if err != nil {
					logger.Warn("tracing disabled", zap.Error(err))
					return
				}
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						shutdown()
						return nil
					},
				})
			},
			func(srv *server.Server, svc *listing.Service, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						// Warm the collection; a failed first fetch is
						// not fatal, the UI can trigger a refresh.
						if err := svc.Refresh(ctx, listing.ListQuery{}); err != nil {
							logger.Warn("initial job fetch failed", zap.Error(err))
						}
						go func() {
							if err := srv.Listen(); err != nil {
								logger.Error("http server stopped", zap.Error(err))
							}
						}()
						logger.Info("listing service started", zap.String("addr", cfg.ListenAddr))
						return nil
					},
					OnStop: func(ctx context.Context) error {
						return srv.Shutdown(ctx)
					},
				})
			},
			func(r *scheduler.Refresher, publisher events.Publisher, lc fx.Lifecycle) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						r.Start()
						return nil
					},
					OnStop: func(ctx context.Context) error {
						r.Stop()
						publisher.Close()
						return nil
					},
				})
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
