package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal/internal/apperr"
	"jobportal/internal/api/middleware"
)

const internalErrorMessage = "Internal Server Error"

// Fail translates a taxonomy error into the client envelope. This is the
// only place an error becomes a status code; anything outside the taxonomy
// is treated as internal. Internal causes are logged, never exposed.
func Fail(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(internalErrorMessage, err)
	}

	if appErr.Kind == apperr.KindInternal {
		logger := middleware.LoggerFromContext(c)
		logger.Error("request failed", slog.Any("error", appErr.Cause))
		c.JSON(http.StatusInternalServerError, gin.H{"message": appErr.Message, "success": false})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"message": appErr.Message, "success": false})
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized", "success": false})
}
