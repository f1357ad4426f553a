package announcement

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/authz"
)

// RegisterAnnouncementRoutes mounts announcement routes on an authenticated group.
func RegisterAnnouncementRoutes(router *gin.RouterGroup, db *gorm.DB) {
	repo := NewAnnouncementRepository(db)
	controller := NewAnnouncementController(repo, authz.NewService(db))

	announcements := router.Group("/teams/:id/announcements")
	{
		announcements.GET("", controller.ListAnnouncements)
		announcements.POST("", controller.CreateAnnouncement)
		announcements.PUT("/:announcementId", controller.UpdateAnnouncement)
		announcements.DELETE("/:announcementId", controller.DeleteAnnouncement)
	}
}
