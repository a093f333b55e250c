package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/goprovision/internal/adapter/http"
	"github.com/iho/goprovision/internal/adapter/http/handler"
	postgresRepo "github.com/iho/goprovision/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/goprovision/internal/adapter/repository/redis"
	"github.com/iho/goprovision/internal/infrastructure/config"
	"github.com/iho/goprovision/internal/infrastructure/logger"
	"github.com/iho/goprovision/internal/infrastructure/metrics"
	"github.com/iho/goprovision/internal/infrastructure/pdmodel"
	"github.com/iho/goprovision/internal/infrastructure/postgres"
	"github.com/iho/goprovision/internal/infrastructure/redis"
	"github.com/iho/goprovision/internal/risk"
	"github.com/iho/goprovision/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Load PD model artifact
	model, err := pdmodel.Load(cfg.PDModelPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load pd model")
	}
	if model == nil {
		log.Warn().Msg("no pd model configured, every loan will use the fallback pd")
	}

	// Initialize repositories
	retrier := postgresRepo.NewRetrier()
	loanRepo := postgresRepo.NewLoanRepository(pool)
	clientRepo := postgresRepo.NewClientRepository(pool)
	runRepo := postgresRepo.NewRunRepository(pool)
	stageRepo := postgresRepo.NewStageResultRepository(pool, retrier)
	eclRepo := postgresRepo.NewECLResultRepository(pool, retrier)
	impairmentRepo := postgresRepo.NewImpairmentResultRepository(pool, retrier)
	progressStore := redisRepo.NewProgressStore(redisClient, appLogger)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	m := metrics.New()
	estimator := risk.NewPDEstimator(model)
	stagingUC := usecase.NewStagingUseCase(loanRepo, stageRepo, runRepo, progressStore, idGen, appLogger, m, cfg.ChunkSize)
	eclUC := usecase.NewECLUseCase(loanRepo, clientRepo, eclRepo, runRepo, estimator, progressStore, idGen, appLogger, m, cfg.ChunkSize, cfg.Workers)
	impairmentUC := usecase.NewImpairmentUseCase(loanRepo, impairmentRepo, runRepo, progressStore, idGen, appLogger, m, cfg.ChunkSize)
	runUC := usecase.NewRunUseCase(runRepo)

	// Initialize handlers
	calculationHandler := handler.NewCalculationHandler(stagingUC, eclUC, impairmentUC)
	runHandler := handler.NewRunHandler(runUC, progressStore)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CalculationHandler: calculationHandler,
		RunHandler:         runHandler,
		HealthHandler:      healthHandler,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
