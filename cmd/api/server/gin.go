package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-crud-service/cmd/api/di"
	"user-crud-service/internal/adapter/gin/middleware"
	ginrouter "user-crud-service/internal/adapter/gin/router"
	"user-crud-service/internal/config"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(cfg *config.Config, c *di.Container, l *zap.Logger) *http.Server {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORS.AllowedOrigins

	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(c.UserHandler, c.HealthHandler, c.RateLimiter, corsConfig, l)

	l.Info("Gin REST API configured",
		zap.String("address", cfg.App.Addr()),
		zap.Strings("cors_origins", corsConfig.AllowedOrigins),
		zap.Bool("rate_limit", c.RateLimiter != nil),
		zap.Bool("cache", c.RedisClient != nil),
	)
	l.Info("Swagger UI available at", zap.String("url", "http://localhost"+cfg.App.Addr()+"/swagger/index.html"))

	return &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
