package router

import (
	"github.com/gin-gonic/gin"

	"galeria/internal/handler"
	"galeria/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	imageH *handler.ImageHandler,
	uploadH *handler.UploadHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	api := r.Group("/api")
	api.GET("/images", imageH.List)
	api.POST("/upload", uploadH.Upload)
	api.POST("/presigned-url", uploadH.Presign)

	return r
}
