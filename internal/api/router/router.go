package router

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/denisAlshanov/mediagate/internal/api/handlers"
	"github.com/denisAlshanov/mediagate/internal/api/middleware"
	"github.com/denisAlshanov/mediagate/internal/config"
	"github.com/denisAlshanov/mediagate/internal/services/filestore"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
	server *http.Server
}

func NewRouter(cfg *config.Config, mediaHandler *handlers.MediaHandler, healthHandler *handlers.HealthHandler, store *filestore.Store) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Add middleware
	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())

	// Health endpoints (no auth required)
	health := engine.Group("/")
	{
		health.GET("/health", healthHandler.Health)
		health.GET("/ready", healthHandler.Readiness)
		health.GET("/live", healthHandler.Liveness)
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Produced files, read-only and unauthenticated
	engine.Static(filestore.RoutePrefix, store.Dir())

	media := engine.Group("/")
	media.Use(middleware.AuthMiddleware(&cfg.API))
	{
		media.GET("/download", mediaHandler.DownloadVideo)
		media.GET("/download/audio", mediaHandler.DownloadAudio)
		media.GET("/thumbnail", mediaHandler.Thumbnail)
		media.GET("/info", mediaHandler.Info)
	}

	return &Router{
		engine: engine,
		config: cfg,
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until Shutdown is called.
func (r *Router) Start() error {
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
