package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/token"
)

const (
	AuthUserIDKey = "auth_user_id"
	AuthRoleKey   = "auth_role"
)

// RequireAuth validates the Bearer token, checks the user still exists, and
// attaches the caller's id and global role to the request context.
func RequireAuth(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.SendError(c, http.StatusUnauthorized, responses.KindUnauthenticated, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			responses.SendError(c, http.StatusUnauthorized, responses.KindUnauthenticated, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			responses.SendError(c, http.StatusUnauthorized, responses.KindUnauthenticated, "Invalid or expired token: "+err.Error())
			return
		}

		var exists bool
		if err := db.Table("users").Select("1").Where("id = ? AND deleted_at IS NULL", claims.UserID).Scan(&exists).Error; err != nil || !exists {
			responses.SendError(c, http.StatusUnauthorized, responses.KindUnauthenticated, "User not found or inactive")
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)
		c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user's ID from the context.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}

	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}
	return uid, nil
}

// GetRoleFromContext extracts the authenticated user's global role from the context.
func GetRoleFromContext(c *gin.Context) string {
	if role, exists := c.Get(AuthRoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
