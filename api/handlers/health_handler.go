package handlers

import (
	"net/http"
	"os/exec"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	version      string
	engineBinary string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, engineBinary string) *HealthHandler {
	return &HealthHandler{
		version:      version,
		engineBinary: engineBinary,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready handles GET /ready. The server is ready once the engine binary resolves.
func (h *HealthHandler) Ready(c *gin.Context) {
	path, err := exec.LookPath(h.engineBinary)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "engine binary not found: " + h.engineBinary,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "engine": path})
}
