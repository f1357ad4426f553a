package event

import (
	"time"

	"gorm.io/gorm"
)

const (
	TypeTraining = "training"
	TypeMeeting  = "meeting"
	TypeSocial   = "social"
	TypeOther    = "other"
)

// Attendance statuses.
const (
	StatusAttending = "attending"
	StatusAbsent    = "absent"
	StatusMaybe     = "maybe"
)

// Event is a non-match team activity: training sessions, meetings, socials.
type Event struct {
	gorm.Model
	TeamID      uint      `json:"team_id" gorm:"index"`
	Title       string    `json:"title" gorm:"not null"`
	Type        string    `json:"type" gorm:"default:'training'"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

// Attendance records a roster member's response to an event or a match.
// Exactly one of EventID and MatchID is set.
type Attendance struct {
	gorm.Model
	TeamID       uint   `json:"team_id" gorm:"index"`
	EventID      *uint  `json:"event_id" gorm:"index"`
	MatchID      *uint  `json:"match_id" gorm:"index"`
	TeamMemberID uint   `json:"team_member_id" gorm:"index"`
	Status       string `json:"status" gorm:"default:'maybe'"`
	Note         string `json:"note"`
}
