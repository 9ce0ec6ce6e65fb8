package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/volunteerhub/internal/metrics"
)

// MetricsHandler exposes the in-process metrics snapshot.
type MetricsHandler struct {
	metrics *metrics.Metrics
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(m *metrics.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: m}
}

// Get handles GET /metrics.
func (h *MetricsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetAllMetrics())
}

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
