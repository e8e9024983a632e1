package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"galeria/internal/service"
)

// UploadHandler handles both upload protocols: proxied multipart uploads and
// the presigned-URL handshake for direct uploads.
type UploadHandler struct {
	uploads service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload handles POST /api/upload
// @Summary Upload a photo through the server
// @Description Upload a photo (JPG, PNG or GIF, max 10MB) via multipart form
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo to upload"
// @Success 200 {object} map[string]interface{} "upload result with view link"
// @Failure 400 {object} map[string]string "missing file, bad type or oversize"
// @Failure 500 {object} map[string]string "storage failure"
// @Router /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file was sent.")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.uploads.Upload(c.Request.Context(), service.ProxiedUploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Photo uploaded successfully!",
		"fileId":   result.ObjectName,
		"fileName": result.ObjectName,
		"viewLink": result.ViewURL,
	})
}

type presignRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
	FileSize int64  `json:"fileSize"`
}

// Presign handles POST /api/presigned-url
// @Summary Request a presigned upload URL
// @Description Validate the file (JPG, PNG or GIF, max 20MB) and issue a write-only URL valid for 15 minutes
// @Tags upload
// @Accept json
// @Produce json
// @Param request body presignRequest true "File name, type and size"
// @Success 200 {object} map[string]interface{} "presigned URL, object name and expiry"
// @Failure 400 {object} map[string]string "missing fields, bad type or oversize"
// @Failure 500 {object} map[string]string "storage failure"
// @Router /api/presigned-url [post]
func (h *UploadHandler) Presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "File name and type are required.")
		return
	}

	result, err := h.uploads.Presign(c.Request.Context(), service.PresignRequest{
		FileName: req.FileName,
		FileType: req.FileType,
		FileSize: req.FileSize,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"uploadUrl":  result.UploadURL,
		"viewUrl":    result.ViewURL,
		"objectName": result.ObjectName,
		"expiresAt":  result.ExpiresAt,
		"instructions": gin.H{
			"method": http.MethodPut,
			"headers": gin.H{
				"Content-Type":   req.FileType,
				"Content-Length": strconv.FormatInt(req.FileSize, 10),
			},
		},
	})
}
