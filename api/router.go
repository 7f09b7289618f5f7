package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/xdownload/api/handlers"
	"github.com/yourusername/xdownload/api/middleware"
	"github.com/yourusername/xdownload/internal/app"
)

// RouterConfig carries what the router needs besides the download manager
type RouterConfig struct {
	Version      string
	EngineBinary string
}

// SetupRouter sets up the HTTP router
func SetupRouter(downloadMgr *app.DownloadManager, config RouterConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	healthHandler := handlers.NewHealthHandler(config.Version, config.EngineBinary)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		platformHandler := handlers.NewPlatformHandler(downloadMgr.Registry())
		platforms := v1.Group("/platforms")
		{
			platforms.GET("", platformHandler.ListPlatforms)
			platforms.GET("/detect", platformHandler.DetectPlatform)
		}

		downloadHandler := handlers.NewDownloadHandler(downloadMgr, logger)
		downloads := v1.Group("/downloads")
		{
			downloads.POST("", downloadHandler.Download)
			downloads.GET("", downloadHandler.ListDownloads)
			downloads.GET("/stats", downloadHandler.GetStats)
			downloads.GET("/:id", downloadHandler.GetDownload)
		}

		v1.GET("/formats", downloadHandler.ListFormats)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
