package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/authz"
)

// RegisterMatchRoutes mounts match and lineup routes on an authenticated group.
func RegisterMatchRoutes(router *gin.RouterGroup, db *gorm.DB) {
	repo := NewMatchRepository(db)
	controller := NewMatchController(repo, authz.NewService(db))

	matches := router.Group("/teams/:id/matches")
	{
		matches.GET("", controller.ListMatches)
		matches.POST("", controller.CreateMatch)
		matches.GET("/:matchId", controller.GetMatch)
		matches.PUT("/:matchId", controller.UpdateMatch)
		matches.DELETE("/:matchId", controller.DeleteMatch)

		matches.GET("/:matchId/lineup", controller.GetLineup)
		matches.POST("/:matchId/lineup", controller.SaveLineup)
	}

	lineups := router.Group("/teams/:id/lineups")
	{
		lineups.GET("", controller.ListTeamLineups)
		lineups.POST("", controller.CreateTeamLineup)
		lineups.DELETE("/:lineupId", controller.DeleteTeamLineup)
	}
}
