package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"jobportal/internal/api/middleware"
	"jobportal/internal/auth"
	"jobportal/internal/uploads"
)

// RegisterRoutes registers the API routes under /v1.
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	authService *auth.AuthService,
	uploader *uploads.Service,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	cookieDomain string,
	internalSecret string,
) {
	userHandler := NewUserHandler(db, authService, uploader, logger, cookieDomain)
	maintenanceHandler := NewMaintenanceHandler(db, redisClient, logger)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		userGroup := v1.Group("/users")
		{
			userGroup.POST("/register", userHandler.Register)
			userGroup.POST("/login", userHandler.Login)
			userGroup.GET("/logout", userHandler.Logout)
			userGroup.GET("/me", authMiddleware, userHandler.Me)
			userGroup.POST("/profile/update", authMiddleware, userHandler.UpdateProfile)
		}

		maintenanceGroup := v1.Group("/maintenance")
		maintenanceGroup.Use(middleware.InternalSecretMiddleware(internalSecret))
		{
			maintenanceGroup.POST("/resume-urls/repair", maintenanceHandler.RepairResumeURLs)
		}
	}
}
