package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/danakita/danakita/internal/pkg/config"
	"github.com/danakita/danakita/internal/pkg/database"
	"github.com/danakita/danakita/internal/pkg/health"
	"github.com/danakita/danakita/internal/pkg/logger"
	"github.com/danakita/danakita/internal/pkg/middleware"
	"github.com/danakita/danakita/internal/pkg/nats"
	nrpkg "github.com/danakita/danakita/internal/pkg/newrelic"
	"github.com/danakita/danakita/internal/pkg/scheduler"
	"github.com/danakita/danakita/internal/pkg/server"
	"github.com/danakita/danakita/services/payment"
	"github.com/danakita/danakita/services/payment/gateway"
	"github.com/danakita/danakita/services/payment/handler"
	"github.com/danakita/danakita/services/payment/repository"
	"github.com/danakita/danakita/services/payment/usecase"
)

func main() {
	appName := "payment-service"
	configPath := "config/payment.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	// Set global logger for application-wide access
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	retention := time.Duration(configs.Payment.RetentionMinutes) * time.Minute

	// PostgreSQL backs the terminal transaction archive; the service runs
	// without it when no host is configured
	var postgresClient *database.PostgresClient
	var archiveRepo payment.ArchiveRepo
	if configs.Database.Host != "" {
		postgresClient, err = database.NewPostgresClient(configs.Database)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
		}
		defer postgresClient.Close()

		archiveRepo = repository.NewPostgresArchiveRepo(postgresClient.GetDB())
	} else {
		logger.Warn("No PostgreSQL host configured, terminal transactions will not be archived")
	}

	// Select the transaction store backend
	var redisClient *database.RedisClient
	var transactionRepo payment.TransactionRepo
	var memoryRepo *repository.MemoryTransactionRepo

	switch configs.Payment.StoreBackend {
	case "redis":
		redisClient, err = database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		defer redisClient.Close()

		transactionRepo = repository.NewRedisTransactionRepo(redisClient, nil, retention)
	default:
		memoryRepo = repository.NewMemoryTransactionRepo(nil, retention)
		memoryRepo.StartJanitor(time.Duration(configs.Payment.JanitorIntervalSec) * time.Second)
		defer memoryRepo.StopJanitor()

		transactionRepo = memoryRepo
	}

	logger.Info("Transaction store initialized",
		logger.String("backend", configs.Payment.StoreBackend))

	// Initialize NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	if !natsClient.IsConnected() {
		zapLogger.Fatal("NATS client not connected")
	}

	// Initialize scheduler for expiry deadlines
	timerScheduler := scheduler.NewTimerScheduler(nil)
	defer timerScheduler.Stop()

	// Initialize gateway
	paymentGW := gateway.NewPaymentGW(natsClient)

	// Initialize usecase
	paymentUC := usecase.NewPaymentUC(configs, transactionRepo, archiveRepo, paymentGW, timerScheduler, zapLogger)

	// Initialize handlers
	paymentHandler := handler.NewPaymentHandler(paymentUC)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Initialize health service
	healthService := health.NewHealthService(zapLogger)
	if postgresClient != nil {
		healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	}
	if redisClient != nil {
		healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	}
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	paymentHandler.RegisterRoutes(e)

	// Start server and block until shutdown
	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, shutdownTimeout)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server shutdown with error", logger.Err(err))
	}

	if nrApp != nil {
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
