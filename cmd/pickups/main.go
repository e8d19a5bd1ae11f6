package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/pickups/internal/pkg/config"
	"github.com/piresc/pickups/internal/pkg/database"
	"github.com/piresc/pickups/internal/pkg/health"
	"github.com/piresc/pickups/internal/pkg/logger"
	"github.com/piresc/pickups/internal/pkg/middleware"
	natspkg "github.com/piresc/pickups/internal/pkg/nats"
	nrpkg "github.com/piresc/pickups/internal/pkg/newrelic"
	"github.com/piresc/pickups/internal/pkg/server"
	"github.com/piresc/pickups/services/pickups"
	"github.com/piresc/pickups/services/pickups/gateway"
	"github.com/piresc/pickups/services/pickups/handler"
	natsHandler "github.com/piresc/pickups/services/pickups/handler/nats"
	"github.com/piresc/pickups/services/pickups/repository"
	"github.com/piresc/pickups/services/pickups/usecase"
	"go.uber.org/zap"
)

func main() {
	configs := config.InitConfig(config.GetEnv("CONFIG_PATH", "config/pickups.env"))
	appName := configs.App.Name

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
		zap.String("data_source", configs.Data.Source),
	)

	if err := config.Validate(configs); err != nil {
		zapLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	views, err := config.LoadViews(configs.Data.ViewsFile)
	if err != nil {
		zapLogger.Fatal("Failed to load map views", zap.Error(err))
	}

	shutdownManager := server.NewShutdownManager(zapLogger)
	healthService := health.NewHealthService()

	// Pickup source
	var pickupRepo pickups.PickupRepo
	switch configs.Data.Source {
	case config.DataSourcePostgres:
		postgresClient, err := database.NewPostgresClient(configs.Database)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		shutdownManager.Register("postgres", func(context.Context) error { return postgresClient.Close() })
		healthService.AddChecker("postgres", health.NewPingChecker(postgresClient))
		pickupRepo = repository.NewPostgresRepository(configs, postgresClient.GetDB())
	default:
		pickupRepo = repository.NewCSVRepository(configs)
	}

	// Snapshot cache, Redis when configured
	var (
		snapshotCache pickups.SnapshotCache = repository.NewMemoryCache()
		chartLimiter  echo.MiddlewareFunc
	)
	if configs.Redis.Host != "" {
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		shutdownManager.Register("redis", func(context.Context) error { return redisClient.Close() })
		healthService.AddChecker("redis", health.NewPingChecker(redisClient))
		snapshotCache = repository.NewRedisCache(configs, redisClient)
		if configs.RateLimit.ChartsPerMinute > 0 {
			chartLimiter = middleware.IPRateLimiter(configs.RateLimit.ChartsPerMinute, time.Minute, redisClient.GetClient())
		}
	}

	// NATS is optional
	var (
		pickupGW   pickups.PickupGW
		subscriber natsHandler.Subscriber
	)
	if configs.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(configs.NATS.URL, appName)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		shutdownManager.Register("nats", func(context.Context) error { return natsClient.Close() })
		healthService.AddChecker("nats", health.NewNATSChecker(natsClient.IsConnected))
		pickupGW = gateway.NewPickupGW(natsClient)
		subscriber = natsClient
	}

	store := repository.NewStore()
	healthService.AddChecker("dataset", health.NewDatasetChecker(store.Loaded))

	pickupUC := usecase.NewPickupUC(configs, pickupRepo, store, snapshotCache, pickupGW, views)

	// The dashboard answers 503 until the first load completes
	go func() {
		info, err := pickupUC.LoadDataset(context.Background())
		if err != nil {
			zapLogger.Error("Initial dataset load failed", zap.Error(err))
			return
		}
		zapLogger.Info("Dataset loaded",
			zap.String("version", info.Version),
			zap.Int("rows", info.Rows),
		)
	}()

	Handler := handler.NewHandler(pickupUC, subscriber, time.Duration(configs.Data.ReloadTimeout)*time.Second)
	if err := Handler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", zap.Error(err))
	}

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	e.Use(middleware.RequestContextMiddleware(appName))
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger, "/ping", "/health", "/healthz", "/ready"))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	if err := Handler.RegisterRoutes(e, configs.Internal.APIKey, chartLimiter); err != nil {
		zapLogger.Fatal("Failed to register routes", zap.Error(err))
	}

	zapLogger.Info("Starting server",
		zap.String("app", appName),
		zap.Int("port", configs.Server.Port),
	)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	runErr := srv.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownManager.Shutdown(ctx); err != nil {
		zapLogger.Error("Shutdown completed with errors", zap.Error(err))
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	if runErr != nil {
		zapLogger.Error("Server stopped with error", zap.Error(runErr))
		zapLogger.Close()
		os.Exit(1)
	}
}
