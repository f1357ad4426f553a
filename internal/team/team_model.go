package team

import (
	"gorm.io/gorm"
)

// Team is a managed soccer team. JoinCode is a short human-enterable code
// used for self-service joining.
type Team struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Crest       string `json:"crest"`
	Season      string `json:"season"`
	JoinCode    string `json:"join_code" gorm:"uniqueIndex"`
	CreatedByID uint   `json:"created_by_id" gorm:"index"`
}

// TeamMember is a roster slot within a team. It represents a person on the
// roster independent of whether that person has a platform account: a nil
// UserID means the entry is an unclaimed placeholder seeded by an admin or
// coach, with no login behind it.
type TeamMember struct {
	gorm.Model
	TeamID       uint   `json:"team_id" gorm:"index"`
	FullName     string `json:"full_name" gorm:"not null"`
	Role         string `json:"role" gorm:"default:'player'"`
	UserID       *uint  `json:"user_id" gorm:"index"`
	IsVerified   bool   `json:"is_verified" gorm:"default:false"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number"`
}

// Unclaimed reports whether the roster slot has no linked platform account.
func (m *TeamMember) Unclaimed() bool {
	return m.UserID == nil
}

// TeamUser grants a user visibility into a team without necessarily holding
// a roster role. Created by the join-by-code path and by claim approval.
type TeamUser struct {
	gorm.Model
	TeamID uint   `json:"team_id" gorm:"index:idx_team_users_pair,unique"`
	UserID uint   `json:"user_id" gorm:"index:idx_team_users_pair,unique"`
	Role   string `json:"role" gorm:"default:'member'"`
}
