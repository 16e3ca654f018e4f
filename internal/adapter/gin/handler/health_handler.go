package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PingFunc checks that a backing dependency is reachable.
type PingFunc func(ctx context.Context) error

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	ping    PingFunc
	timeout time.Duration
	log     *zap.Logger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(ping PingFunc, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		ping:    ping,
		timeout: 2 * time.Second,
		log:     log,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		if err := h.ping(ctx); err != nil {
			h.log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
