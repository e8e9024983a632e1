package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"galeria/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	storage port.ObjectStorage
	prefix  string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(storage port.ObjectStorage, prefix string) *HealthHandler {
	return &HealthHandler{storage: storage, prefix: prefix}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if _, err := h.storage.List(c.Request.Context(), h.prefix); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "storage backend not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
