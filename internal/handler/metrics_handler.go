package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/user-directory/internal/service"
	appErrors "github.com/noah-isme/user-directory/pkg/errors"
	"github.com/noah-isme/user-directory/pkg/response"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	ready   <-chan struct{}
}

// NewMetricsHandler constructs a metrics handler. ready is closed once the
// record load has finished; a nil channel means always ready.
func NewMetricsHandler(metrics *service.MetricsService, ready <-chan struct{}) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, ready: ready}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports 503 until the record load has finished.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.ready != nil {
		select {
		case <-h.ready:
		default:
			response.Error(c, appErrors.ErrNotReady)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
