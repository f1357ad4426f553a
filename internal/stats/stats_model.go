package stats

import (
	"gorm.io/gorm"
)

// PlayerStat holds a roster member's accumulated numbers, either for one
// match (MatchID set) or as a season entry (MatchID nil).
type PlayerStat struct {
	gorm.Model
	TeamID        uint   `json:"team_id" gorm:"index"`
	TeamMemberID  uint   `json:"team_member_id" gorm:"index"`
	MatchID       *uint  `json:"match_id" gorm:"index"`
	Season        string `json:"season"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	MinutesPlayed int    `json:"minutes_played"`
}

// LeagueClassification is one row of the league standings table a team
// maintains for its competition.
type LeagueClassification struct {
	gorm.Model
	TeamID       uint   `json:"team_id" gorm:"index"`
	RivalName    string `json:"rival_name" gorm:"not null"`
	Position     int    `json:"position"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
}

// StatTotals is the aggregate of a member's stats across a season.
type StatTotals struct {
	TeamMemberID  uint   `json:"team_member_id"`
	Season        string `json:"season"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	MinutesPlayed int    `json:"minutes_played"`
	Matches       int64  `json:"matches"`
}
