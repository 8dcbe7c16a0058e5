package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/dto"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness probe
type HealthHandler struct {
	pinger  Pinger
	timeout time.Duration
	logger  coreport.Logger
}

// NewHealthHandler creates a health handler. A nil pinger always reports ok.
func NewHealthHandler(pinger Pinger, timeout time.Duration, logger coreport.Logger) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{pinger: pinger, timeout: timeout, logger: logger}
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(c *gin.Context) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
				Status: "unavailable",
				Error:  "store unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
