package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/terra-clan/product-catalog/internal/api"
	"github.com/terra-clan/product-catalog/internal/catalog"
	"github.com/terra-clan/product-catalog/internal/cleanup"
	"github.com/terra-clan/product-catalog/internal/compare"
	"github.com/terra-clan/product-catalog/internal/config"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting catalog-service",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"data_dir", cfg.Data.Dir,
	)

	// Load the dataset once; missing files mean an empty catalog, only a
	// malformed payload is fatal
	store := catalog.NewStore(cfg.Data.Dir)
	if err := store.Load(); err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	// Select the compare-set persistence backend
	var compareStore compare.Store
	var redisStore *compare.RedisStore
	switch cfg.Compare.Backend {
	case config.CompareBackendRedis:
		redisStore, err = compare.NewRedisStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Compare.SessionTTL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		compareStore = redisStore
		slog.Info("compare store connected", "backend", "redis", "address", cfg.Redis.Address)
	default:
		compareStore = compare.NewMemoryStore()
		slog.Info("compare store initialized", "backend", "memory")
	}

	compareManager := compare.NewManager(compareStore, cfg.Compare.SessionTTL)

	// Initialize cleanup worker
	cleaner := cleanup.NewCleaner(compareManager, cfg.Cleanup.Interval)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, store, compareManager, cfg.Data.Dir)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	slog.Info("catalog-service stopped")
}
