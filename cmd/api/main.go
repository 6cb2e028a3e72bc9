package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/huevos-organicos/backend/internal/api/dto"
	httptransport "github.com/huevos-organicos/backend/internal/api/http"
	"github.com/huevos-organicos/backend/internal/api/http/handlers"
	"github.com/huevos-organicos/backend/internal/auth"
	"github.com/huevos-organicos/backend/internal/config"
	"github.com/huevos-organicos/backend/internal/events"
	"github.com/huevos-organicos/backend/internal/observability"
	"github.com/huevos-organicos/backend/internal/persistence"
	"github.com/huevos-organicos/backend/internal/repository"
	"github.com/huevos-organicos/backend/internal/service"
	"github.com/huevos-organicos/backend/internal/worker"
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

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("invalid auth configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.RunMigrations {
		if err := persistence.RunMigrations(cfg.Database.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	db, err := persistence.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	defer db.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	clientRepo := repository.NewClientRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	statsDeps := service.StatsDependencies{
		Products: productRepo,
		Users:    userRepo,
		Clients:  clientRepo,
		TTL:      cfg.Redis.StatsTTL(),
		Metrics:  metrics,
		Logger:   logger,
	}
	var redisPinger handlers.Pinger
	if redis.Enabled() {
		statsDeps.Cache = persistence.NewRedisCache(redis.Client)
		redisPinger = redis
	}
	statsService := service.NewStatsService(statsDeps)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: userRepo,
		Tokens:   tokens,
		Metrics:  metrics,
		Logger:   logger,
	})
	userService := service.NewUserService(userRepo, dispatcher, logger, cfg.Auth)
	productService := service.NewProductService(productRepo)
	clientService := service.NewClientService(clientRepo, statsService)
	leadService := service.NewLeadService(leadRepo, dispatcher)

	if err := userService.EnsureAdmin(ctx, cfg.Bootstrap); err != nil {
		logger.Fatal("failed to seed bootstrap admin", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, logger, metrics)
	validator := dto.NewValidator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.CORS.AllowedOrigins)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, db, redisPinger, statsService),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, validator),
		Products:       handlers.NewProductsHandler(productService, validator),
		Clients:        handlers.NewClientsHandler(clientService, validator),
		Leads:          handlers.NewLeadsHandler(leadService, validator),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
