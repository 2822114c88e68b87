package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/iho/gopix/internal/adapter/http"
	"github.com/iho/gopix/internal/adapter/http/handler"
	"github.com/iho/gopix/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gopix/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gopix/internal/adapter/repository/redis"
	"github.com/iho/gopix/internal/infrastructure/config"
	"github.com/iho/gopix/internal/infrastructure/logger"
	"github.com/iho/gopix/internal/infrastructure/metrics"
	"github.com/iho/gopix/internal/infrastructure/postgres"
	"github.com/iho/gopix/internal/infrastructure/redis"
	"github.com/iho/gopix/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gopix-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info().Msg("migrations applied")

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	statementRepo := postgresRepo.NewStatementRepository(pool)
	pixKeyRepo := postgresRepo.NewPixKeyRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	pixKeyUC := usecase.NewPixKeyUseCase(pixKeyRepo, cache, cfg.PixKeyCacheTTL)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, statementRepo, pixKeyUC, idGen, retrier)
	statementUC := usecase.NewStatementUseCase(statementRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// HTTP handlers
	m := metrics.New()
	accountHandler := handler.NewAccountHandler(accountUC, m)
	transferHandler := handler.NewTransferHandler(transferUC, m)
	pixKeyHandler := handler.NewPixKeyHandler(pixKeyUC, m)
	statementHandler := handler.NewStatementHandler(statementUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	// Drop idle per-IP buckets so the limiter map does not grow forever.
	cleanupTicker := time.NewTicker(time.Hour)
	defer cleanupTicker.Stop()
	go func() {
		for range cleanupTicker.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		TransferHandler:  transferHandler,
		PixKeyHandler:    pixKeyHandler,
		StatementHandler: statementHandler,
		LedgerHandler:    ledgerHandler,
		HealthHandler:    healthHandler,
		Logger:           log,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
