package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/logger"
	"github.com/justsurfingit/job-search-tracker/internal/services"
)

// respondError maps service errors onto status codes. Unexpected failures are
// logged and answered with a fixed "Failed to <action>" message.
func respondError(c *gin.Context, err error, resource, action string) {
	var invalid services.ValidationError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	default:
		logger.Error(c.Request.Context(), "request failed", "action", action, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func deleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
