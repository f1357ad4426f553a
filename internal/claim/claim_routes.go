package claim

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/authz"
)

// RegisterClaimRoutes mounts the member-claim workflow on an authenticated group.
func RegisterClaimRoutes(router *gin.RouterGroup, db *gorm.DB) {
	repo := NewClaimRepository(db)
	controller := NewClaimController(repo, authz.NewService(db))

	claims := router.Group("/teams/:id/claims")
	{
		claims.GET("", controller.ListClaims)
		claims.POST("", controller.SubmitClaim)
		claims.POST("/:claimId/approve", controller.ApproveClaim)
		claims.POST("/:claimId/reject", controller.RejectClaim)
	}
}
