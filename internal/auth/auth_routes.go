package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/config"
	"github.com/teamkick/teamkick/internal/middleware"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	authRepo := NewAuthRepository(db)
	authController := NewAuthController(authRepo, appConfig)

	// Public routes
	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
		authPublic.POST("/refresh-token", authController.RefreshToken)
	}

	// Authenticated routes
	authProtected := router.Group("/auth")
	authProtected.Use(middleware.RequireAuth(appConfig.Auth.SessionSecret, db))
	{
		authProtected.GET("/me", authController.Me)
		authProtected.PUT("/me", authController.UpdateProfile)
		authProtected.POST("/change-password", authController.ChangePassword)
		authProtected.POST("/logout", authController.Logout)
	}
}
