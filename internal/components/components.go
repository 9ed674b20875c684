package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/api"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/config"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/redis"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/service"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/storage/postgres"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/workers"
	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Dispatcher *service.NotificationDispatcher
	Sweeper    *workers.PresenceSweeper
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	notifyQueue := redis.NewNotifyQueue(redisClient.Client, "notifications:queue")
	activeCache := redis.NewActiveAlertCache(redisClient)

	contactSvc := service.NewContactResolverService(storage.Contacts)
	lifecycleSvc := service.NewAlertLifecycleService(storage.Alerts, storage.Contacts, notifyQueue, activeCache, logger)
	locationSvc := service.NewLocationTrackerService(storage.Alerts, logger)
	querySvc := service.NewQueryService(storage.Alerts, storage.Stat, activeCache, logger)

	srv := service.NewService(lifecycleSvc, locationSvc, contactSvc, querySvc)

	httpServer := api.NewServer(cfg, logger, srv)
	logger.Info("Initialized server")

	var dispatcher *service.NotificationDispatcher
	if !cfg.Notify.Disabled {
		dispatcher = service.NewNotificationDispatcher(logger, cfg.Notify, notifyQueue)
	}

	var sweeper *workers.PresenceSweeper
	if !cfg.Presence.Disabled {
		sweeper = workers.NewPresenceSweeper(storage.Alerts, logger, cfg.Presence.SweepInterval, cfg.Presence.Silence)
	}

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Dispatcher: dispatcher,
		Sweeper:    sweeper,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
