// Package main provides the entry point for the MediaGate service.
// @title MediaGate API
// @version 1.0
// @description Authenticated HTTP gateway that fetches video, audio, thumbnails and metadata from online media URLs.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API key authentication

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/denisAlshanov/mediagate/docs" // Import for swagger docs
	"github.com/denisAlshanov/mediagate/internal/api/handlers"
	"github.com/denisAlshanov/mediagate/internal/api/router"
	"github.com/denisAlshanov/mediagate/internal/config"
	"github.com/denisAlshanov/mediagate/internal/services/extractor"
	"github.com/denisAlshanov/mediagate/internal/services/filestore"
	"github.com/denisAlshanov/mediagate/internal/services/media"
	"github.com/denisAlshanov/mediagate/internal/services/storage"
	"github.com/denisAlshanov/mediagate/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := utils.ConfigureLogger(cfg.Log.Level, cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	if err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}
	defer logFile.Close()

	logger := utils.GetLogger()
	logger.Info("Starting MediaGate service")

	store, err := filestore.New(cfg.Store.Dir, cfg.Server.PublicBaseURL)
	if err != nil {
		logger.Fatalf("Failed to initialize file store: %v", err)
	}

	// Optional S3 mirror, nil when no bucket is configured
	mirror, err := storage.NewStorage(&cfg.S3)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	httpClient := &http.Client{Timeout: cfg.Extractor.HTTPClientTimeout}

	// Stream downloads are bounded by the request context, not a total timeout.
	streamClient := &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ResponseHeaderTimeout: cfg.Extractor.HTTPClientTimeout,
		},
	}

	ex, err := extractor.NewExtractor(&cfg.Extractor, streamClient)
	if err != nil {
		logger.Fatalf("Failed to initialize extractor: %v", err)
	}

	mediaService := media.NewService(ex, store, httpClient, mirror, cfg.S3.Prefix)

	// Initialize handlers
	mediaHandler := handlers.NewMediaHandler(mediaService, cfg.API.ErrorStatusMode)
	healthHandler := handlers.NewHealthHandler(store.Dir(), mirror)

	r := router.NewRouter(cfg, mediaHandler, healthHandler, store)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.Store.RetentionMaxAge > 0 {
		logger.Infof("Retention enabled: removing files older than %s every %s",
			cfg.Store.RetentionMaxAge, cfg.Store.RetentionInterval)
		go store.RunJanitor(ctx, cfg.Store.RetentionInterval, cfg.Store.RetentionMaxAge)
	}

	// Start server
	go func() {
		logger.Infof("Starting server on %s:%s (backend=%s, store=%s)",
			cfg.Server.Host, cfg.Server.Port, cfg.Extractor.Backend, store.Dir())
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server shutdown complete")
}
