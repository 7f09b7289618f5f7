package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/xdownload/internal/app"
	"github.com/yourusername/xdownload/internal/domain"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 50

// DownloadHandler handles download-related HTTP requests
type DownloadHandler struct {
	downloadMgr *app.DownloadManager
	logger      *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(downloadMgr *app.DownloadManager, logger *zap.Logger) *DownloadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadHandler{
		downloadMgr: downloadMgr,
		logger:      logger,
	}
}

// DownloadRequest represents a request to download a post
type DownloadRequest struct {
	URL      string `json:"url" binding:"required"`
	Platform string `json:"platform,omitempty"`
}

// FormatsResponse lists the formats of a post
type FormatsResponse struct {
	URL      string               `json:"url"`
	Title    string               `json:"title"`
	Uploader string               `json:"uploader"`
	Formats  []domain.MediaFormat `json:"formats"`
}

// Download handles POST /api/v1/downloads. The download runs synchronously.
func (h *DownloadHandler) Download(c *gin.Context) {
	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.downloadMgr.Download(c.Request.Context(), app.DownloadRequest{
		URL:      req.URL,
		Platform: req.Platform,
	})

	switch {
	case result.Success:
		c.JSON(http.StatusCreated, result)
	case result.ErrorKind == domain.KindUnsupportedPlatform:
		c.JSON(http.StatusBadRequest, result)
	default:
		c.JSON(http.StatusUnprocessableEntity, result)
	}
}

// ListDownloads handles GET /api/v1/downloads
func (h *DownloadHandler) ListDownloads(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	var records []*domain.HistoryRecord
	var err error
	if videoID := c.Query("video_id"); videoID != "" {
		records, err = h.downloadMgr.VideoHistory(c.Query("platform"), videoID)
	} else {
		records, err = h.downloadMgr.History(c.Query("platform"), limit)
	}
	if err != nil {
		h.historyError(c, "Failed to list downloads", err)
		return
	}

	if records == nil {
		records = []*domain.HistoryRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// GetDownload handles GET /api/v1/downloads/:id
func (h *DownloadHandler) GetDownload(c *gin.Context) {
	record, err := h.downloadMgr.HistoryRecord(c.Param("id"))
	if err != nil {
		h.historyError(c, "Failed to get download", err)
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetStats handles GET /api/v1/downloads/stats
func (h *DownloadHandler) GetStats(c *gin.Context) {
	stats, err := h.downloadMgr.Stats()
	if err != nil {
		h.historyError(c, "Failed to get stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListFormats handles GET /api/v1/formats?url=&platform=
func (h *DownloadHandler) ListFormats(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	info, err := h.downloadMgr.Inspect(c.Request.Context(), url, c.Query("platform"))
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedPlatform) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Warn("Failed to list formats", zap.String("url", url), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      err.Error(),
			"error_kind": domain.KindOf(err),
		})
		return
	}

	formats := info.Formats
	if formats == nil {
		formats = []domain.MediaFormat{}
	}
	c.JSON(http.StatusOK, FormatsResponse{
		URL:      url,
		Title:    info.Title,
		Uploader: info.Uploader,
		Formats:  formats,
	})
}

func (h *DownloadHandler) historyError(c *gin.Context, msg string, err error) {
	if errors.Is(err, app.ErrHistoryDisabled) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, domain.ErrUnsupportedPlatform) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
