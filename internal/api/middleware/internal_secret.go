package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// InternalSecretMiddleware gates maintenance endpoints behind a shared
// secret. The secret travels in a header so it never leaks into query
// strings or access logs.
func InternalSecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(secret) == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal api secret is not configured", "success": false})
			return
		}
		token := strings.TrimSpace(c.GetHeader("X-Internal-Secret"))
		if token == "" || token != secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized", "success": false})
			return
		}
		c.Next()
	}
}
