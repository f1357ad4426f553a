package invitation

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/config"
	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/pkg/mailer"
)

// RegisterInvitationRoutes mounts invitation routes on an authenticated group.
func RegisterInvitationRoutes(router *gin.RouterGroup, db *gorm.DB) {
	cfg := config.GetConfig()
	mail := mailer.New(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)

	repo := NewInvitationRepository(db)
	controller := NewInvitationController(repo, authz.NewService(db), mail, cfg.App.FrontendURL)

	invitations := router.Group("/teams/:id/invitations")
	{
		invitations.GET("", controller.ListInvitations)
		invitations.POST("", controller.CreateInvitation)
		invitations.DELETE("/:invitationId", controller.RevokeInvitation)
	}

	router.POST("/invitations/accept", controller.AcceptInvitation)
}
