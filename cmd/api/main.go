// Package main provides the entrypoint for the multiplanner API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/multiplanner/multiplanner/internal/api"
	"github.com/multiplanner/multiplanner/internal/api/middleware"
	"github.com/multiplanner/multiplanner/internal/database"
	"github.com/multiplanner/multiplanner/internal/planner"
	"github.com/multiplanner/multiplanner/internal/planner/tfl"
	"github.com/multiplanner/multiplanner/internal/provider/resilience"
	"github.com/multiplanner/multiplanner/internal/station"
	"github.com/multiplanner/multiplanner/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "multiplanner-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting multiplanner API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize station directory
	stationRepo := station.NewPostgresRepository(pool)
	stationService := station.NewService(stationRepo, log)
	log.Info().Msg("station service initialized")

	// Initialize the TfL gateway behind a resilient client
	appKey := os.Getenv("TFL_APP_KEY")
	if appKey == "" {
		log.Fatal().Msg("TFL_APP_KEY is required")
	}

	httpClient := resilience.NewClient(resilience.DefaultClientConfig(tfl.ProviderName))
	gateway := tfl.NewClient(tfl.ClientConfig{
		AppKey:     appKey,
		BaseURL:    os.Getenv("TFL_BASE_URL"),
		HTTPClient: httpClient,
		Logger:     log,
	})
	log.Info().Str("provider", gateway.Name()).Msg("transit gateway initialized")

	// Initialize the journey planner with cache metrics
	cacheMetrics, err := middleware.NewProviderMetrics(tfl.ProviderName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}

	plannerService := planner.New(planner.Config{
		Gateway:       gateway,
		Logger:        log,
		JourneyTTL:    durationFromEnv("JOURNEY_CACHE_TTL", 5*time.Minute),
		StopSearchTTL: durationFromEnv("STOP_SEARCH_CACHE_TTL", 90*time.Minute),
		Provider:      tfl.ProviderName,
		Metrics:       cacheMetrics,
	})
	log.Info().Msg("journey planner initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		Database:       pool,
		StationService: stationService,
		Planner:        plannerService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
