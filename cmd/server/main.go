package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/vincent/forexledger/internal/adapter/http"
	"github.com/vincent/forexledger/internal/adapter/http/handler"
	postgresRepo "github.com/vincent/forexledger/internal/adapter/repository/postgres"
	redisRepo "github.com/vincent/forexledger/internal/adapter/repository/redis"
	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/infrastructure/auth"
	"github.com/vincent/forexledger/internal/infrastructure/config"
	"github.com/vincent/forexledger/internal/infrastructure/logger"
	"github.com/vincent/forexledger/internal/infrastructure/metrics"
	"github.com/vincent/forexledger/internal/infrastructure/postgres"
	"github.com/vincent/forexledger/internal/infrastructure/ratesource"
	"github.com/vincent/forexledger/internal/infrastructure/redis"
	"github.com/vincent/forexledger/internal/usecase"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Run migrations before opening the pool so readiness never flips on a
	// half-migrated schema.
	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

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

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	bookRepo := postgresRepo.NewBookRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	rateRepo := postgresRepo.NewExchangeRateRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	rateSource := ratesource.NewClient(cfg.RateSourceBaseURL)
	appMetrics := metrics.New()

	// Initialize use cases
	bookUC := usecase.NewBookUseCase(bookRepo, rateRepo, idGen).WithMetrics(appMetrics)
	entryUC := usecase.NewEntryUseCase(txManager, bookRepo, entryRepo, rateRepo, idGen).WithMetrics(appMetrics)
	rateUC := usecase.NewRateUseCase(rateRepo, rateSource, cache).WithMetrics(appMetrics)
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	} else if cfg.AuthEnabled {
		log.Fatal().Msg("AUTH_ENABLED requires JWT_SECRET to be set")
	}

	// Initialize handlers
	bookHandler := handler.NewBookHandler(bookUC)
	entryHandler := handler.NewEntryHandler(entryUC)
	rateHandler := handler.NewRateHandler(rateUC)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BookHandler:      bookHandler,
		EntryHandler:     entryHandler,
		RateHandler:      rateHandler,
		AuthHandler:      authHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		JWTManager:       jwtManager,
		AuthEnabled:      cfg.AuthEnabled,
		Logger:           log.Logger,
		Metrics:          appMetrics,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Periodic rate refresh keeps quotes warm without waiting for the first
	// POST /rates/{bank}/refresh.
	refreshCtx, stopRefresh := context.WithCancel(ctx)
	defer stopRefresh()
	if cfg.RateRefreshPeriod > 0 {
		go refreshRatesLoop(refreshCtx, rateUC, cfg.RateRefreshPeriod)
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
	stopRefresh()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// refreshRatesLoop refreshes every known bank's rate sheet on a fixed period.
// A failed bank is logged and skipped; the next tick retries it.
func refreshRatesLoop(ctx context.Context, rateUC *usecase.RateUseCase, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, bank := range domain.Banks() {
				stored, err := rateUC.RefreshRates(ctx, bank)
				if err != nil {
					log.Warn().Err(err).Str("bank", bank).Msg("rate refresh failed")
					continue
				}
				log.Debug().Str("bank", bank).Int("stored", stored).Msg("rates refreshed")
			}
		}
	}
}
