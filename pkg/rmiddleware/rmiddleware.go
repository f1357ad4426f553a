// Package rmiddleware gates routes by the caller's GLOBAL role. Team-scoped
// permissions are resolved separately by internal/authz.
package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/pkg/responses"
)

// RequireRole passes only callers whose global role is in the allowed set.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := middleware.GetUserIDFromContext(c); err != nil {
			responses.SendError(c, http.StatusUnauthorized, responses.KindUnauthenticated, "Unauthorized: "+err.Error())
			return
		}

		userRole := middleware.GetRoleFromContext(c)
		for _, required := range allowedRoles {
			if strings.EqualFold(userRole, required) {
				c.Set("user_role", userRole)
				c.Next()
				return
			}
		}

		responses.SendError(c, http.StatusForbidden, responses.KindInsufficientRole, "You don't have permission to access this resource")
	}
}

// RequireSuperuser restricts a route to superusers only.
func RequireSuperuser() gin.HandlerFunc {
	return RequireRole("superuser")
}

// RequireAdmin restricts a route to admins and superusers.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin", "superuser")
}
