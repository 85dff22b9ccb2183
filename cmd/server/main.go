package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/damon-houk/ecb-currency-exchange/internal/application/service"
	"github.com/damon-houk/ecb-currency-exchange/internal/config"
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/registry"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/api"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/cache"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/db"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/ecb"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/handler"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/metrics"
	"github.com/dgraph-io/badger/v3"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env file: %v", err)
	}

	cfg := config.MustLoad()

	appLogger := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.Log.Level))
	logger.SetDefaultLogger(appLogger)

	appLogger.Info("Starting ECB currency exchange service", map[string]interface{}{
		"env":       cfg.Env,
		"address":   cfg.HTTPServer.Address,
		"feed_url":  cfg.Feed.URL,
		"in_memory": cfg.Storage.InMemory,
	})

	// Setup BadgerDB
	badgerOpts := badger.DefaultOptions(cfg.Storage.Path)
	if cfg.Storage.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else if err := os.MkdirAll(cfg.Storage.Path, 0o755); err != nil {
		appLogger.Fatal("Failed to create database directory", map[string]interface{}{
			"path":  cfg.Storage.Path,
			"error": err.Error(),
		})
	}
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		appLogger.Fatal("Failed to open database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	defer func() {
		if err := badgerDB.Close(); err != nil {
			appLogger.Error("Error closing BadgerDB", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	appMetrics := metrics.NewMetrics()
	currencies := registry.Default()

	// Rate cache: fetches on demand, persists the raw feed in Badger
	feedClient := api.NewECBFeedClient(cfg.Feed.URL, &http.Client{Timeout: cfg.Feed.Timeout}, appLogger)
	rateCache := cache.NewRateCache(
		feedClient,
		ecb.NewParser(),
		db.NewBadgerSnapshotRepository(badgerDB),
		cache.RateCacheOptions{
			BaseCurrency:     cfg.Feed.BaseCurrency,
			MinFetchInterval: cfg.Feed.MinFetchInterval,
			MaxSnapshotAge:   cfg.Feed.MaxSnapshotAge,
			Metrics:          appMetrics,
			Logger:           appLogger,
		},
	)

	if err := rateCache.Restore(context.Background()); err != nil {
		appLogger.Warn("Failed to restore rate snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize services
	currencyService := service.NewCurrencyService(currencies, appLogger, appMetrics)
	conversionService := service.NewConversionService(rateCache, currencies, appLogger, appMetrics)

	router := handler.NewRouter(appLogger, appMetrics,
		handler.NewSystemHandler(rateCache, appLogger),
		handler.NewCurrencyHandler(currencyService, appLogger),
		handler.NewConversionHandler(conversionService, appLogger),
	)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server listening", map[string]interface{}{
			"address": cfg.HTTPServer.Address,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server", map[string]interface{}{
			"signal": sig.String(),
		})
	case err := <-serverErr:
		appLogger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited", nil)
}
