package announcement

import (
	"gorm.io/gorm"
)

// Announcement is a message posted to a team's board. Pinned announcements
// sort before the rest.
type Announcement struct {
	gorm.Model
	TeamID       uint   `json:"team_id" gorm:"index"`
	AuthorUserID uint   `json:"author_user_id" gorm:"index"`
	Title        string `json:"title" gorm:"not null"`
	Body         string `json:"body" gorm:"type:text"`
	Pinned       bool   `json:"pinned" gorm:"default:false"`
}
