package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"galeria/internal/domain"
)

// respondError sends the API's flat error payload.
func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// handleError maps a domain error onto an HTTP status and an actionable,
// category-specific message. Validation failures become 400s carrying the
// service's own wording (which already names the allowed types or the size
// ceiling); everything else is a 500 with operator guidance. Internal detail
// never reaches the client.
func handleError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrUnsupportedFileType) || errors.Is(err, domain.ErrFileTooLarge) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	requestID, _ := c.Get("request_id")
	log.Printf("[%s] storage error: %v", requestID, err)

	switch {
	case errors.Is(err, domain.ErrMissingConfig):
		respondError(c, http.StatusInternalServerError,
			"Storage configuration is incomplete. Check the GALERIA_STORAGE_* environment variables.")
	case errors.Is(err, domain.ErrBucketNotFound):
		respondError(c, http.StatusInternalServerError,
			"The bucket was not found or is not configured correctly. Check that it exists and that you have access to it.")
	case errors.Is(err, domain.ErrAuthFailed):
		respondError(c, http.StatusInternalServerError,
			"Authentication error. Check your object-storage credentials.")
	default:
		respondError(c, http.StatusInternalServerError,
			"Internal server error. Try again in a few moments.")
	}
}
