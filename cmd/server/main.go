package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dharmasatrya/toursearch/internal/aggregator"
	"github.com/dharmasatrya/toursearch/internal/booking"
	"github.com/dharmasatrya/toursearch/internal/cache"
	"github.com/dharmasatrya/toursearch/internal/config"
	"github.com/dharmasatrya/toursearch/internal/handler"
	"github.com/dharmasatrya/toursearch/internal/payment"
	"github.com/dharmasatrya/toursearch/internal/providers"
	"github.com/dharmasatrya/toursearch/internal/ratelimit"
)

func main() {
	envLoaded := config.LoadEnv()
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel).With().Timestamp().Logger()
	if !envLoaded {
		logger.Debug().Msg("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := handler.NewServer(logger, cfg.CORSOrigins)

	providerList, err := initializeProviders(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize providers")
	}
	logger.Info().Int("providers", len(providerList)).Msg("tour providers initialized")

	providerLimiter := ratelimit.NewKeyedLimiterWithDefaults()
	providerLimiter.SetLimit("fixture", 50, 100)

	agg := aggregator.NewAggregator(providerList, aggregator.Config{
		Timeout:    cfg.CatalogTimeout,
		MaxRetries: cfg.CatalogMaxRetries,
		RetryDelays: []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
		},
		RateLimiter: providerLimiter,
		Logger:      logger.With().Str("component", "aggregator").Logger(),
	})

	var tourCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		tourCache = redisCache
		logger.Info().
			Str("addr", cfg.RedisHost+":"+cfg.RedisPort).
			Dur("ttl", cfg.RedisTTL).
			Msg("redis cache enabled")
	} else {
		tourCache = cache.NewNoOpCache()
		logger.Info().Msg("cache disabled")
	}
	defer tourCache.Close()

	searchLimiter := ratelimit.NewKeyedLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.SearchRateRPS,
		BurstSize:         cfg.SearchRateBurst,
	})
	paymentLimiter := ratelimit.NewKeyedLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.PaymentRateRPS,
		BurstSize:         cfg.PaymentRateBurst,
	})
	go searchLimiter.RunPruner(ctx, time.Minute, cfg.LimiterIdleExpiry)
	go paymentLimiter.RunPruner(ctx, time.Minute, cfg.LimiterIdleExpiry)

	clock := payment.SystemClock{}
	store := booking.NewStore(booking.SeedBookings(), booking.Config{
		Clock:           clock,
		Limiter:         paymentLimiter,
		ProcessingDelay: cfg.PaymentDelay,
		Logger:          logger.With().Str("component", "booking").Logger(),
	})

	searchHandler := handler.NewSearchHandler(agg, tourCache, logger)
	bookingHandler := handler.NewBookingHandler(store, clock)

	api := e.Group("/api/v1")
	api.POST("/tours/search", searchHandler.Search, handler.RateLimitByIP(searchLimiter))
	api.GET("/tours/featured", searchHandler.Featured)
	api.GET("/bookings", bookingHandler.List)
	api.GET("/bookings/:id", bookingHandler.Get)
	api.POST("/bookings/:id/pay", bookingHandler.Pay)
	api.POST("/bookings/:id/cancel", bookingHandler.Cancel)
	e.GET("/health", handler.HealthHandler)

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting tour search server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
}

func initializeProviders(cfg config.Config, logger zerolog.Logger) ([]providers.Provider, error) {
	catalogLogger := logger.With().Str("component", "catalog").Logger()
	var providerList []providers.Provider

	fixture, err := providers.NewFixtureProvider(catalogLogger)
	if err != nil {
		return nil, err
	}
	providerList = append(providerList, fixture)

	if cfg.CatalogFile != "" {
		providerList = append(providerList, providers.NewFileProvider(cfg.CatalogFile, catalogLogger))
	}

	return providerList, nil
}
