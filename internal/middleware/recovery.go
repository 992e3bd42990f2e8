package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/logger"
)

// Recovery answers a handler panic with a 500 in the API's error shape. The
// panic value and stack only go to the log.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "panic recovered",
			"panic", fmt.Sprint(recovered),
			"method", c.Request.Method,
			"route", c.FullPath(),
			"stack", string(debug.Stack()),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      "Internal server error",
			"request_id": GetRequestID(c),
		})
	})
}
