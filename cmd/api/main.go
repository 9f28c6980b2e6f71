package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-system/internal/api/http"
	"github.com/spec-kit/ticket-system/internal/api/http/handlers"
	"github.com/spec-kit/ticket-system/internal/auth"
	"github.com/spec-kit/ticket-system/internal/config"
	"github.com/spec-kit/ticket-system/internal/domain"
	"github.com/spec-kit/ticket-system/internal/events"
	"github.com/spec-kit/ticket-system/internal/observability"
	"github.com/spec-kit/ticket-system/internal/persistence"
	"github.com/spec-kit/ticket-system/internal/repository"
	"github.com/spec-kit/ticket-system/internal/service"
	"github.com/spec-kit/ticket-system/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	tickets, err := buildTicketRepository(ctx, cfg, pg, logger)
	if err != nil {
		logger.Fatal("failed to prepare ticket store", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	users, err := repository.NewMemoryUserRepository(domain.DefaultUsers(), cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to seed identity store", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	var publisher service.EventPublisher
	var notifier *worker.NotificationWorker
	if redis.Enabled() {
		notifier = worker.NewNotificationWorker(service.NewRedisPublisher(redis.Client), 256, logger)
		notifier.Start(ctx)
		publisher = notifier
	}
	service.NewNotificationService(dispatcher, publisher, cfg.Redis.EventsChannel, logger).RegisterHandlers()

	authService := service.NewAuthService(users, auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), nil))
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:      tickets,
		Dispatcher:      dispatcher,
		DefaultAssignee: cfg.Tickets.DefaultAssignee,
		Logger:          logger,
	})

	app := httptransport.NewApp(cfg.App.Name, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        observability.NewMetrics(),
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowOrigins:   cfg.CORS.AllowOrigins,
	}, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, authService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	if notifier != nil {
		notifier.Wait()
	}
}

func buildTicketRepository(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) (repository.TicketRepository, error) {
	var seed []domain.Ticket
	if cfg.Tickets.SeedDemo {
		seed = domain.DemoTickets()
	}
	if !pg.Enabled() {
		return repository.NewMemoryTicketRepository(seed), nil
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			return nil, err
		}
	}
	inserted, err := repository.SeedPostgresTickets(ctx, pg.PoolHandle(), seed)
	if err != nil {
		return nil, err
	}
	if inserted > 0 {
		logger.Info("seeded demo tickets", zap.Int("count", inserted))
	}
	return repository.NewPostgresTicketRepository(pg.PoolHandle()), nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
