package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"galeria/internal/service"
)

// ImageHandler handles gallery listing endpoints.
type ImageHandler struct {
	gallery service.GalleryService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(gallery service.GalleryService) *ImageHandler {
	return &ImageHandler{gallery: gallery}
}

// List handles GET /api/images
// @Summary List gallery images
// @Description List every image in the gallery folder, newest first
// @Tags images
// @Produce json
// @Success 200 {object} map[string]interface{} "images and count"
// @Failure 500 {object} map[string]string "storage failure"
// @Router /api/images [get]
func (h *ImageHandler) List(c *gin.Context) {
	images, err := h.gallery.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"images":  images,
		"count":   len(images),
	})
}
