package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"mortgage-engine/config"
	httpLayer "mortgage-engine/http"
	"mortgage-engine/logging"
	"mortgage-engine/repository"
	"mortgage-engine/service"
)

func main() {
	configPath := os.Getenv("MORTGAGE_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level)

	scheduleRepo, err := newScheduleRepository(cfg.Storage, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("storage unavailable")
	}

	cache, closeCache := newCache(cfg.Cache, logger)
	defer closeCache()

	mortgageService := service.NewMortgageService(
		scheduleRepo,
		cache,
		config.Duration(cfg.Cache.TTL, time.Hour),
		logger,
	)

	advisor := service.NewAdvisorService(
		cfg.Advisor.APIKey,
		cfg.Advisor.APIURL,
		cfg.Advisor.Model,
		config.Duration(cfg.Advisor.Timeout, 30*time.Second),
		logger,
	)
	comparisonService := service.NewComparisonService(advisor)
	termRecommendationService := service.NewTermRecommendationService(advisor, logger)

	rateLimiter := httpLayer.NewRateLimiter(
		cfg.RateLimit.Requests,
		config.Duration(cfg.RateLimit.Window, time.Minute),
	)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Mortgage:       httpLayer.NewMortgageHandler(mortgageService, comparisonService, logger),
		Terms:          httpLayer.NewTermRecommendationHandler(termRecommendationService, logger),
		Limiter:        rateLimiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeout, 15*time.Second),
		IdleTimeout:  config.Duration(cfg.Server.IdleTimeout, 60*time.Second),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("mortgage API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error().Err(err).Msg("error starting server")
		return
	case <-quit:
		logger.Info().Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Duration(cfg.Server.ShutdownTimeout, 10*time.Second))
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server exited")
}

func newScheduleRepository(cfg config.StorageConfig, logger zerolog.Logger) (repository.ScheduleRepository, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := repository.OpenPostgres(cfg.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("recording calculations in postgres")
		return repository.NewScheduleRepositoryGorm(db), nil
	case "", "memory":
		return repository.NewScheduleRepositoryMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// newCache falls back to the in-process cache when redis is unreachable.
func newCache(cfg config.CacheConfig, logger zerolog.Logger) (repository.CacheRepository, func()) {
	if cfg.Driver != "redis" {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, using memory cache")
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	logger.Info().Str("addr", cfg.RedisAddr).Msg("caching schedules in redis")
	return redisCache, func() { _ = redisCache.Close() }
}
