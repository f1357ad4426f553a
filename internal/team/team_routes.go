package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/pkg/rmiddleware"
)

// RegisterTeamRoutes mounts team and roster routes on an authenticated group.
func RegisterTeamRoutes(router *gin.RouterGroup, db *gorm.DB) {
	repo := NewTeamRepository(db)
	controller := NewTeamController(repo, authz.NewService(db))

	teams := router.Group("/teams")
	{
		teams.GET("", controller.ListMyTeams)
		teams.POST("", controller.CreateTeam)
		teams.POST("/join", controller.JoinByCode)
		teams.GET("/:id", controller.GetTeam)
		teams.PUT("/:id", controller.UpdateTeam)
		teams.DELETE("/:id", controller.DeleteTeam)

		teams.GET("/:id/members", controller.ListMembers)
		teams.POST("/:id/members", controller.AddMember)
		teams.PUT("/:id/members/:memberId", controller.UpdateMember)
		teams.DELETE("/:id/members/:memberId", controller.RemoveMember)
	}

	admin := router.Group("/admin/teams")
	admin.Use(rmiddleware.RequireSuperuser())
	{
		admin.GET("", controller.AdminListTeams)
		admin.GET("/:id", controller.AdminGetTeam)
		admin.PUT("/:id", controller.AdminUpdateTeam)
		admin.DELETE("/:id", controller.AdminDeleteTeam)
	}
}
