package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	// Team operations
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamByJoinCode(code string) (*Team, error)
	GetTeamsByUserID(userID uint) ([]Team, error)
	GetAllTeams(page, limit int, search string) ([]Team, int64, error)
	UpdateTeam(team *Team) error
	DeleteTeam(id uint) error

	// TeamMember operations
	AddTeamMember(member *TeamMember) error
	GetTeamMemberByID(id uint) (*TeamMember, error)
	GetTeamMembers(teamID uint) ([]TeamMember, error)
	GetTeamMemberByUser(teamID, userID uint) (*TeamMember, error)
	UpdateTeamMember(member *TeamMember) error
	RemoveTeamMember(id uint) error

	// TeamUser operations
	AddTeamUser(tu *TeamUser) error
	GetTeamUser(teamID, userID uint) (*TeamUser, error)

	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// --- Team Operations ---

func (r *teamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamByJoinCode(code string) (*Team, error) {
	var team Team
	if err := r.db.Where("join_code = ?", code).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamsByUserID(userID uint) ([]Team, error) {
	var teams []Team

	// Teams the user created, is rostered on, or joined by code.
	err := r.db.
		Distinct("teams.*").
		Joins("LEFT JOIN team_members ON team_members.team_id = teams.id AND team_members.user_id = ? AND team_members.deleted_at IS NULL", userID).
		Joins("LEFT JOIN team_users ON team_users.team_id = teams.id AND team_users.user_id = ? AND team_users.deleted_at IS NULL", userID).
		Where("teams.created_by_id = ? OR team_members.id IS NOT NULL OR team_users.id IS NOT NULL", userID).
		Order("teams.created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) GetAllTeams(page, limit int, search string) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

func (r *teamRepository) DeleteTeam(id uint) error {
	// Roster, visibility records and domain data hang off the team.
	if err := r.db.Where("team_id = ?", id).Delete(&TeamMember{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("team_id = ?", id).Delete(&TeamUser{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&Team{}, id).Error
}

// --- TeamMember Operations ---

func (r *teamRepository) AddTeamMember(member *TeamMember) error {
	return r.db.Create(member).Error
}

func (r *teamRepository) GetTeamMemberByID(id uint) (*TeamMember, error) {
	var member TeamMember
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) GetTeamMembers(teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	if err := r.db.Where("team_id = ?", teamID).Order("full_name asc").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *teamRepository) GetTeamMemberByUser(teamID, userID uint) (*TeamMember, error) {
	var member TeamMember
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) UpdateTeamMember(member *TeamMember) error {
	return r.db.Save(member).Error
}

func (r *teamRepository) RemoveTeamMember(id uint) error {
	return r.db.Delete(&TeamMember{}, id).Error
}

// --- TeamUser Operations ---

func (r *teamRepository) AddTeamUser(tu *TeamUser) error {
	return r.db.Create(tu).Error
}

func (r *teamRepository) GetTeamUser(teamID, userID uint) (*TeamUser, error) {
	var tu TeamUser
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&tu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tu, nil
}

// WithTransaction runs txFunc against a repository bound to a transaction.
func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
