package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal/internal/auth"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "token"

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized", "success": false})
}

// AuthMiddleware validates the session cookie and injects userID into the context.
func AuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
