package authz

import (
	"github.com/gin-gonic/gin"

	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/pkg/responses"
)

// RequireView resolves the caller from the request context and enforces team
// visibility. On failure it writes the error response and returns ok=false.
func (s *Service) RequireView(c *gin.Context, teamID uint) (userID uint, ok bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return 0, false
	}
	allowed, err := s.CanView(userID, teamID, middleware.GetRoleFromContext(c))
	if err != nil {
		responses.InternalServerError(c, "Failed to check team access")
		return 0, false
	}
	if !allowed {
		responses.Forbidden(c, "You are not a member of this team")
		return 0, false
	}
	return userID, true
}

// RequireManage resolves the caller from the request context and enforces the
// team admin/coach right. On failure it writes the error response and returns
// ok=false.
func (s *Service) RequireManage(c *gin.Context, teamID uint) (userID uint, ok bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return 0, false
	}
	allowed, err := s.CanManage(userID, teamID, middleware.GetRoleFromContext(c))
	if err != nil {
		responses.InternalServerError(c, "Failed to check team access")
		return 0, false
	}
	if !allowed {
		responses.Forbidden(c, "Admin or coach role on this team is required")
		return 0, false
	}
	return userID, true
}
