// Package main is the entry point for the slidepress server.
// It loads configuration, connects to the optional backing services, builds
// the slide pipeline, sets up routing, and starts the HTTP server with
// graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"slidepress/internal/ai"
	"slidepress/internal/cache"
	"slidepress/internal/config"
	"slidepress/internal/database"
	"slidepress/internal/handlers"
	"slidepress/internal/middleware"
	"slidepress/internal/pipeline"
	"slidepress/internal/router"
	"slidepress/internal/storage"
	"slidepress/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"deck_concurrency", cfg.DeckConcurrency,
	)

	heuristics, err := config.LoadHeuristics(cfg.LayoutConfig)
	if err != nil {
		slog.Error("failed to load layout heuristics", "error", err)
		os.Exit(1)
	}

	// Metrics registry shared by the pipeline and the HTTP layer.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := pipeline.MustNewMetrics(reg)
	httpMetrics, err := middleware.NewHTTPMetrics(reg)
	if err != nil {
		slog.Error("failed to register http metrics", "error", err)
		os.Exit(1)
	}

	layoutCache, err := pipeline.NewLayoutCache(cfg.LayoutCacheSize, metrics)
	if err != nil {
		slog.Error("failed to create layout cache", "error", err)
		os.Exit(1)
	}
	p := pipeline.New(pipeline.Options{
		Heuristics: &heuristics,
		Cache:      layoutCache,
		Metrics:    metrics,
	})

	deps := handlers.Deps{
		Pipeline:        p,
		DeckConcurrency: cfg.DeckConcurrency,
	}

	// PostgreSQL persists processed slides and export records. Development
	// runs continue without it.
	db := connectDatabase(cfg)
	if db != nil {
		defer db.Close()
		deps.Slides = store.NewSlideStore(db)
		deps.Exports = store.NewExportStore(db)
	}

	// Valkey memoizes processed slides across requests and instances.
	valkeyClient := connectValkey(cfg)
	if valkeyClient != nil {
		defer valkeyClient.Close()
		deps.Cache = cache.NewSlideCache(valkeyClient, cfg.SlideCacheTTL)
	}

	// S3-compatible object storage for deck exports (optional).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		deps.Objects = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, deck export disabled")
	}

	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai": {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"claude": {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
	})
	if aiRegistry.HasProvider(cfg.AIProvider) {
		deps.Drafter = ai.NewSlideGenerator(aiRegistry)
		slog.Info("ai providers initialized",
			"active", aiRegistry.ActiveName(),
			"available", aiRegistry.Available(),
		)
	} else {
		slog.Warn("no api key for the active ai provider, slide generation disabled", "provider", cfg.AIProvider)
	}

	generateLimiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
	defer generateLimiter.Stop()

	r := router.New(handlers.NewAPI(deps), router.Options{
		Gatherer:        reg,
		HTTPMetrics:     httpMetrics,
		GenerateLimiter: generateLimiter,
		MaxBody:         middleware.DefaultMaxBody,
	})

	// WriteTimeout must accommodate the generate endpoint, which waits on a
	// model response, and large decks.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// connectDatabase opens PostgreSQL and applies migrations. Outside
// development a failure is fatal; in development the service runs without
// persistence.
func connectDatabase(cfg *config.Config) *sql.DB {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		if cfg.IsDev() {
			slog.Warn("database unavailable, slide persistence disabled", "error", err)
			return nil
		}
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	return db
}

// connectValkey connects the slide cache backend with the same fallback
// rule as the database.
func connectValkey(cfg *config.Config) *redis.Client {
	client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		if cfg.IsDev() {
			slog.Warn("valkey unavailable, slide cache disabled", "error", err)
			return nil
		}
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	return client
}
