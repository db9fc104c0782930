package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
)

type upstreamPinger interface {
	Ping(ctx context.Context) (models.UpstreamPingResult, error)
}

// HealthHandler exposes observability endpoints.
type HealthHandler struct {
	metrics  *service.MetricsService
	upstream upstreamPinger
}

// NewHealthHandler constructs a health handler.
func NewHealthHandler(metrics *service.MetricsService, upstream upstreamPinger) *HealthHandler {
	return &HealthHandler{metrics: metrics, upstream: upstream}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *HealthHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness check
// @Description Ready when the phlebotomy API answers its health check.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.upstream == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	result, err := h.upstream.Ping(c.Request.Context())
	if err != nil || !result.Reachable {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "upstream": result})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "upstream": result})
}
