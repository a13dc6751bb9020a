package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/tasteofthebes/internal/adapter/driven/serpapi"
	sqliteadapter "github.com/ericfisherdev/tasteofthebes/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/tasteofthebes/internal/adapter/driving/http"
	"github.com/ericfisherdev/tasteofthebes/internal/adapter/metrics"
	"github.com/ericfisherdev/tasteofthebes/internal/application"
	"github.com/ericfisherdev/tasteofthebes/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"log_level", cfg.SlogLevel(),
		"enrichment_timeout", cfg.EnrichmentTimeout,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()
	logger.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	logger.Info("migrations complete")

	// 5. Metrics registry with runtime collectors.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// 6. Wire adapters.
	apiKeyStore := sqliteadapter.NewAPIKeyRepo(db)
	restaurantStore := sqliteadapter.NewRestaurantRepo(db)

	enricher := serpapi.NewClient(serpapi.Config{
		BaseURL:  cfg.EnrichmentURL,
		APIKey:   cfg.EnrichmentAPIKey,
		Locality: cfg.EnrichmentLocality,
		Timeout:  cfg.EnrichmentTimeout,
	}, logger, m)
	if !cfg.HasEnrichment() {
		logger.Warn("no enrichment provider configured, new restaurants will be stored with unknown fields")
	}

	// 7. Services and HTTP handler.
	apiKeySvc := application.NewAPIKeyService(apiKeyStore, logger)
	restaurantSvc := application.NewRestaurantService(restaurantStore, enricher, logger)

	handler := httphandler.NewServeMux(httphandler.NewHandler(apiKeySvc, restaurantSvc, m, logger), reg)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	logger.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
