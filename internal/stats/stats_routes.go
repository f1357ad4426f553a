package stats

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/authz"
)

// RegisterStatsRoutes mounts player stats and classification routes on an
// authenticated group.
func RegisterStatsRoutes(router *gin.RouterGroup, db *gorm.DB) {
	repo := NewStatsRepository(db)
	controller := NewStatsController(repo, authz.NewService(db))

	statsGroup := router.Group("/teams/:id/stats")
	{
		statsGroup.GET("", controller.ListStats)
		statsGroup.POST("", controller.CreateStat)
		statsGroup.PUT("/:statId", controller.UpdateStat)
		statsGroup.DELETE("/:statId", controller.DeleteStat)
	}

	router.GET("/teams/:id/members/:memberId/stats", controller.ListMemberStats)

	classification := router.Group("/teams/:id/classification")
	{
		classification.GET("", controller.GetClassification)
		classification.POST("", controller.CreateClassificationRow)
		classification.PUT("/:rowId", controller.UpdateClassificationRow)
		classification.DELETE("/:rowId", controller.DeleteClassificationRow)
	}
}
