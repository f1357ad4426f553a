package event

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/authz"
)

// RegisterEventRoutes mounts event and attendance routes on an authenticated group.
func RegisterEventRoutes(router *gin.RouterGroup, db *gorm.DB) {
	repo := NewEventRepository(db)
	controller := NewEventController(repo, authz.NewService(db))

	events := router.Group("/teams/:id/events")
	{
		events.GET("", controller.ListEvents)
		events.POST("", controller.CreateEvent)
		events.PUT("/:eventId", controller.UpdateEvent)
		events.DELETE("/:eventId", controller.DeleteEvent)

		events.GET("/:eventId/attendance", controller.ListEventAttendance)
		events.POST("/:eventId/attendance", controller.SetEventAttendance)
	}

	matchAttendance := router.Group("/teams/:id/matches/:matchId/attendance")
	{
		matchAttendance.GET("", controller.ListMatchAttendance)
		matchAttendance.POST("", controller.SetMatchAttendance)
	}
}
