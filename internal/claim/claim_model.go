package claim

import (
	"time"

	"gorm.io/gorm"
)

// Claim lifecycle: pending -> approved | rejected. Terminal states are final.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// MemberClaim is a user's assertion of identity against an unclaimed roster
// entry, subject to approval by a team admin or coach.
type MemberClaim struct {
	gorm.Model
	TeamID          uint       `json:"team_id" gorm:"index"`
	TeamMemberID    uint       `json:"team_member_id" gorm:"index"`
	UserID          uint       `json:"user_id" gorm:"index"`
	Status          string     `json:"status" gorm:"default:'pending';index"`
	RequestedAt     time.Time  `json:"requested_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewedByID    *uint      `json:"reviewed_by_id"`
	RejectionReason string     `json:"rejection_reason"`
}

// Terminal reports whether the claim has reached a final state.
func (c *MemberClaim) Terminal() bool {
	return c.Status == StatusApproved || c.Status == StatusRejected
}
