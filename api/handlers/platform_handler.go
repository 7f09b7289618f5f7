package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/xdownload/internal/app"
)

// PlatformHandler exposes the platform registry
type PlatformHandler struct {
	registry *app.Registry
}

// NewPlatformHandler creates a new platform handler
func NewPlatformHandler(registry *app.Registry) *PlatformHandler {
	return &PlatformHandler{registry: registry}
}

// DetectResponse is the result of matching a URL against the registry
type DetectResponse struct {
	URL      string `json:"url"`
	Alias    string `json:"alias"`
	Platform string `json:"platform"`
	Valid    bool   `json:"valid"`
	VideoID  string `json:"video_id,omitempty"`
}

// ListPlatforms handles GET /api/v1/platforms
func (h *PlatformHandler) ListPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Platforms())
}

// DetectPlatform handles GET /api/v1/platforms/detect?url=
func (h *PlatformHandler) DetectPlatform(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	alias, ok := h.registry.Detect(url)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no registered platform matches the URL"})
		return
	}

	platform, err := h.registry.Get(alias)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, DetectResponse{
		URL:      url,
		Alias:    alias,
		Platform: platform.Name(),
		Valid:    platform.ValidateURL(url),
		VideoID:  platform.ExtractVideoID(url),
	})
}
