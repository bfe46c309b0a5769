// Command api serves the ticket intake HTTP service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-classifier/internal/api/http/handlers"
	"github.com/spec-kit/ticket-classifier/internal/auth"
	"github.com/spec-kit/ticket-classifier/internal/classifier"
	"github.com/spec-kit/ticket-classifier/internal/config"
	"github.com/spec-kit/ticket-classifier/internal/events"
	"github.com/spec-kit/ticket-classifier/internal/observability"
	"github.com/spec-kit/ticket-classifier/internal/persistence"
	"github.com/spec-kit/ticket-classifier/internal/repository"
	"github.com/spec-kit/ticket-classifier/internal/service"
	"github.com/spec-kit/ticket-classifier/internal/worker"

	httptransport "github.com/spec-kit/ticket-classifier/internal/api/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("api failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Postgres.InitSchema {
		if err := persistence.InitSchema(ctx, pg.PoolHandle(), logger); err != nil {
			return err
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	var clf classifier.Classifier = classifier.NewOpenAIClassifier(cfg.Classifier, logger)
	clf = classifier.NewCachedClassifier(clf, redis, cfg.Redis.CacheTTL(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications)

	repo := repository.NewIntakeRepository(pg.PoolHandle())
	intake := service.NewIntakeService(service.IntakeDependencies{
		Classifier:      clf,
		Repo:            repo,
		Dispatcher:      dispatcher,
		Metrics:         metrics,
		Logger:          logger,
		ClassifyTimeout: cfg.Classifier.Timeout(),
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(cfg.Auth, tokens),
		Tickets:        handlers.NewTicketsHandler(intake, repo),
		Customers:      handlers.NewCustomersHandler(repo),
		AuthMiddleware: authMiddleware,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.App.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		_ = app.Shutdown()
		return nil
	case err := <-errCh:
		return err
	}
}
