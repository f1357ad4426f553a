package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/pkg/rmiddleware"
)

// RegisterUserRoutes mounts the superuser user-management panel. The caller
// is expected to have already applied the auth middleware on the group.
func RegisterUserRoutes(router *gin.RouterGroup, db *gorm.DB) {
	repo := NewUserRepository(db)
	controller := NewUserController(repo)

	admin := router.Group("/admin/users")
	admin.Use(rmiddleware.RequireSuperuser())
	{
		admin.GET("", controller.ListUsers)
		admin.POST("", controller.CreateUser)
		admin.GET("/:id", controller.GetUser)
		admin.PUT("/:id", controller.UpdateUser)
		admin.DELETE("/:id", controller.DeleteUser)
	}
}
