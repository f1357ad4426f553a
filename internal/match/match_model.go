package match

import (
	"time"

	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/models"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusPlayed    MatchStatus = "played"
	StatusCancelled MatchStatus = "cancelled"
)

// Match is a scheduled or played fixture against an external opponent.
type Match struct {
	gorm.Model
	TeamID       uint        `json:"team_id" gorm:"index"`
	Opponent     string      `json:"opponent" gorm:"not null"`
	KickoffAt    time.Time   `json:"kickoff_at"`
	Location     string      `json:"location"`
	IsHome       bool        `json:"is_home" gorm:"default:true"`
	Status       MatchStatus `json:"status" gorm:"default:'scheduled'"`
	GoalsFor     int         `json:"goals_for"`
	GoalsAgainst int         `json:"goals_against"`
	Notes        string      `json:"notes"`
}

// MatchLineup is the formation and position assignment saved for one match.
// Assignments maps a pitch position key (e.g. "lw", "st", "gk") to a roster
// member id rendered as a string.
type MatchLineup struct {
	gorm.Model
	MatchID     uint           `json:"match_id" gorm:"uniqueIndex"`
	TeamID      uint           `json:"team_id" gorm:"index"`
	Formation   string         `json:"formation" gorm:"not null"`
	Assignments models.JSONMap `json:"assignments" gorm:"type:json"`
}

// TeamLineup is a reusable named formation template for a team.
type TeamLineup struct {
	gorm.Model
	TeamID      uint           `json:"team_id" gorm:"index"`
	Name        string         `json:"name" gorm:"not null"`
	Formation   string         `json:"formation" gorm:"not null"`
	Assignments models.JSONMap `json:"assignments" gorm:"type:json"`
}
