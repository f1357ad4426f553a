package match

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines the interface for match data operations
type MatchRepository interface {
	CreateMatch(m *Match) error
	GetMatchByID(id uint) (*Match, error)
	GetMatchesByTeam(teamID uint) ([]Match, error)
	UpdateMatch(m *Match) error
	DeleteMatch(id uint) error

	GetLineup(matchID uint) (*MatchLineup, error)
	SaveLineup(l *MatchLineup) error

	CreateTeamLineup(l *TeamLineup) error
	GetTeamLineups(teamID uint) ([]TeamLineup, error)
	GetTeamLineupByID(id uint) (*TeamLineup, error)
	DeleteTeamLineup(id uint) error
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new instance of MatchRepository
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateMatch(m *Match) error {
	return r.db.Create(m).Error
}

func (r *matchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) GetMatchesByTeam(teamID uint) ([]Match, error) {
	var matches []Match
	if err := r.db.Where("team_id = ?", teamID).Order("kickoff_at asc").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) UpdateMatch(m *Match) error {
	return r.db.Save(m).Error
}

func (r *matchRepository) DeleteMatch(id uint) error {
	if err := r.db.Where("match_id = ?", id).Delete(&MatchLineup{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&Match{}, id).Error
}

func (r *matchRepository) GetLineup(matchID uint) (*MatchLineup, error) {
	var l MatchLineup
	if err := r.db.Where("match_id = ?", matchID).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// SaveLineup replaces the whole lineup for a match.
func (r *matchRepository) SaveLineup(l *MatchLineup) error {
	existing, err := r.GetLineup(l.MatchID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Formation = l.Formation
		existing.Assignments = l.Assignments
		if err := r.db.Save(existing).Error; err != nil {
			return err
		}
		*l = *existing
		return nil
	}
	return r.db.Create(l).Error
}

func (r *matchRepository) CreateTeamLineup(l *TeamLineup) error {
	return r.db.Create(l).Error
}

func (r *matchRepository) GetTeamLineups(teamID uint) ([]TeamLineup, error) {
	var lineups []TeamLineup
	if err := r.db.Where("team_id = ?", teamID).Order("created_at desc").Find(&lineups).Error; err != nil {
		return nil, err
	}
	return lineups, nil
}

func (r *matchRepository) GetTeamLineupByID(id uint) (*TeamLineup, error) {
	var l TeamLineup
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *matchRepository) DeleteTeamLineup(id uint) error {
	return r.db.Delete(&TeamLineup{}, id).Error
}
