package invitation

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusExpired  = "expired"
	StatusRevoked  = "revoked"
)

// Invitation is an email invite to join a team. The token is single use
// and the invite expires after a configurable window.
type Invitation struct {
	gorm.Model
	TeamID      uint       `json:"team_id" gorm:"index"`
	Email       string     `json:"email" gorm:"not null;index"`
	Role        string     `json:"role" gorm:"default:'member'"`
	Token       string     `json:"-" gorm:"uniqueIndex;not null"`
	Status      string     `json:"status" gorm:"default:'pending'"`
	ExpiresAt   time.Time  `json:"expires_at"`
	InvitedByID uint       `json:"invited_by_id"`
	AcceptedAt  *time.Time `json:"accepted_at"`
}

// Terminal reports whether the invitation can no longer be accepted or revoked.
func (i *Invitation) Terminal() bool {
	return i.Status == StatusAccepted || i.Status == StatusExpired || i.Status == StatusRevoked
}
