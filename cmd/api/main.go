package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/duel-labs/roadmap-service/internal/api/http"
	"github.com/duel-labs/roadmap-service/internal/api/http/handlers"
	"github.com/duel-labs/roadmap-service/internal/auth"
	"github.com/duel-labs/roadmap-service/internal/config"
	"github.com/duel-labs/roadmap-service/internal/events"
	"github.com/duel-labs/roadmap-service/internal/mail"
	"github.com/duel-labs/roadmap-service/internal/observability"
	"github.com/duel-labs/roadmap-service/internal/persistence"
	"github.com/duel-labs/roadmap-service/internal/repository"
	"github.com/duel-labs/roadmap-service/internal/service"
	"github.com/duel-labs/roadmap-service/internal/store"
	"github.com/duel-labs/roadmap-service/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roadmapRepo := repository.NewRoadmapRepository(pool)
	stepRepo := repository.NewStepRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	alarmRepo := repository.NewAlarmRepository(pool)

	ephemeral := store.NewRedisStore(redis.Client, cfg.Redis.OpTimeout())
	sessions := store.NewSessionStore(ephemeral)
	codes := store.NewCodeStore(ephemeral)

	dispatcher := events.NewInMemoryDispatcher()
	sender := mail.NewSender(cfg.Mail, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: userRepo,
		Sessions: sessions,
	})
	verificationService := service.NewVerificationService(userRepo, codes, sender, cfg.Auth.EmailCodeTTL(), logger)
	roadmapService := service.NewRoadmapService(service.RoadmapDependencies{
		RoadmapRepo: roadmapRepo,
		StepRepo:    stepRepo,
		CommentRepo: commentRepo,
		Dispatcher:  dispatcher,
	})
	alarmService := service.NewAlarmService(alarmRepo, dispatcher, logger)
	worker.StartAlarmWorker(alarmService)

	gatekeeper := auth.NewGatekeeper(authService.TokenManager(), userRepo, auth.DefaultPolicy())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.CORS)

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(authService, verificationService, cfg.Auth)
	roadmapsHandler := handlers.NewRoadmapsHandler(roadmapService)
	alarmsHandler := handlers.NewAlarmsHandler(alarmService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     healthHandler,
		Users:      usersHandler,
		Roadmaps:   roadmapsHandler,
		Alarms:     alarmsHandler,
		Gatekeeper: gatekeeper,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
