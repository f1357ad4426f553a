package user

import (
	"time"

	"gorm.io/gorm"
)

// Global platform roles. A user's global role is a privilege ceiling,
// not a team-scoped right.
const (
	RoleSuperuser = "superuser"
	RoleAdmin     = "admin"
	RoleCoach     = "coach"
	RolePlayer    = "player"
)

// User is a platform identity record.
type User struct {
	gorm.Model
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Password     string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         string     `gorm:"default:'player';index" json:"role"`
	Email        string     `json:"email"`
	Position     string     `json:"position"`
	JerseyNumber int        `json:"jersey_number"`
	LastActive   time.Time  `json:"last_active"`
}

// RefreshToken stores issued refresh tokens so they can be revoked on logout.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}

// ValidGlobalRole reports whether the supplied role is a known global role.
func ValidGlobalRole(role string) bool {
	switch role {
	case RoleSuperuser, RoleAdmin, RoleCoach, RolePlayer:
		return true
	}
	return false
}
