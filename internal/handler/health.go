package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// HandleHealth returns the health status of the service
func (h *Handler) HandleHealth(c *gin.Context) {
	serviceStatus := "ready"
	status := "healthy"
	if h.service == nil {
		serviceStatus = "unavailable"
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceStatus,
	})
}

// HandleReadiness returns whether the service can serve recommendations
func (h *Handler) HandleReadiness(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "completion_client_not_initialized",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
