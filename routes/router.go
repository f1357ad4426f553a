package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/config"
	"github.com/teamkick/teamkick/internal/announcement"
	"github.com/teamkick/teamkick/internal/auth"
	"github.com/teamkick/teamkick/internal/claim"
	"github.com/teamkick/teamkick/internal/event"
	"github.com/teamkick/teamkick/internal/invitation"
	"github.com/teamkick/teamkick/internal/match"
	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/internal/stats"
	"github.com/teamkick/teamkick/internal/team"
	"github.com/teamkick/teamkick/internal/user"
	"github.com/teamkick/teamkick/pkg/logger"
)

// SetupRoutes builds the Gin engine and mounts every feature's routes.
func SetupRoutes(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")

	auth.RegisterAuthRoutes(api, db, cfg)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(cfg.Auth.SessionSecret, db))
	{
		team.RegisterTeamRoutes(protected, db)
		claim.RegisterClaimRoutes(protected, db)
		match.RegisterMatchRoutes(protected, db)
		event.RegisterEventRoutes(protected, db)
		stats.RegisterStatsRoutes(protected, db)
		announcement.RegisterAnnouncementRoutes(protected, db)
		invitation.RegisterInvitationRoutes(protected, db)
		user.RegisterUserRoutes(protected, db)
	}

	return r
}
