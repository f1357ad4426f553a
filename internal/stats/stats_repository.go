package stats

import (
	"errors"

	"gorm.io/gorm"
)

// StatsRepository defines the interface for statistics data operations
type StatsRepository interface {
	CreateStat(s *PlayerStat) error
	GetStatByID(id uint) (*PlayerStat, error)
	GetStatsByTeam(teamID uint, season string) ([]PlayerStat, error)
	GetStatsByMember(teamMemberID uint, season string) ([]PlayerStat, error)
	GetSeasonTotals(teamID uint, season string) ([]StatTotals, error)
	UpdateStat(s *PlayerStat) error
	DeleteStat(id uint) error

	CreateClassificationRow(row *LeagueClassification) error
	GetClassification(teamID uint) ([]LeagueClassification, error)
	GetClassificationRowByID(id uint) (*LeagueClassification, error)
	UpdateClassificationRow(row *LeagueClassification) error
	DeleteClassificationRow(id uint) error
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new instance of StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CreateStat(s *PlayerStat) error {
	return r.db.Create(s).Error
}

func (r *statsRepository) GetStatByID(id uint) (*PlayerStat, error) {
	var s PlayerStat
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) GetStatsByTeam(teamID uint, season string) ([]PlayerStat, error) {
	var list []PlayerStat
	query := r.db.Where("team_id = ?", teamID)
	if season != "" {
		query = query.Where("season = ?", season)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *statsRepository) GetStatsByMember(teamMemberID uint, season string) ([]PlayerStat, error) {
	var list []PlayerStat
	query := r.db.Where("team_member_id = ?", teamMemberID)
	if season != "" {
		query = query.Where("season = ?", season)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *statsRepository) GetSeasonTotals(teamID uint, season string) ([]StatTotals, error) {
	var totals []StatTotals
	query := r.db.Model(&PlayerStat{}).
		Select("team_member_id, season, SUM(goals) as goals, SUM(assists) as assists, SUM(yellow_cards) as yellow_cards, SUM(red_cards) as red_cards, SUM(minutes_played) as minutes_played, COUNT(*) as matches").
		Where("team_id = ?", teamID)
	if season != "" {
		query = query.Where("season = ?", season)
	}
	if err := query.Group("team_member_id, season").Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *statsRepository) UpdateStat(s *PlayerStat) error {
	return r.db.Save(s).Error
}

func (r *statsRepository) DeleteStat(id uint) error {
	return r.db.Delete(&PlayerStat{}, id).Error
}

func (r *statsRepository) CreateClassificationRow(row *LeagueClassification) error {
	return r.db.Create(row).Error
}

func (r *statsRepository) GetClassification(teamID uint) ([]LeagueClassification, error) {
	var rows []LeagueClassification
	if err := r.db.Where("team_id = ?", teamID).Order("position asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) GetClassificationRowByID(id uint) (*LeagueClassification, error) {
	var row LeagueClassification
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *statsRepository) UpdateClassificationRow(row *LeagueClassification) error {
	return r.db.Save(row).Error
}

func (r *statsRepository) DeleteClassificationRow(id uint) error {
	return r.db.Delete(&LeagueClassification{}, id).Error
}
