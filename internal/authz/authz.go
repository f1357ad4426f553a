// Package authz resolves a user's effective team-scoped role. Every
// team-scoped route handler goes through this one capability instead of
// re-deriving membership from the tables itself.
package authz

import (
	"errors"

	"gorm.io/gorm"
)

// Team-scoped roles carried on roster entries.
const (
	TeamRoleAdmin       = "admin"
	TeamRoleCoach       = "coach"
	TeamRolePlayer      = "player"
	TeamRoleColaborador = "colaborador"
	// TeamRoleMember is the role of a join-by-code visibility record.
	TeamRoleMember = "member"
)

// GlobalSuperuser short-circuits every team-scoped check.
const GlobalSuperuser = "superuser"

// Service answers team-scoped authorization questions against the database.
// It deliberately queries tables directly so the feature packages can depend
// on it without an import cycle.
type Service struct {
	db *gorm.DB
}

// NewService creates a new authorization service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// TeamRole returns the user's effective role within a team and whether the
// user has any tie to the team at all. Resolution order: linked roster entry,
// team creator, join-by-code visibility record.
func (s *Service) TeamRole(userID, teamID uint) (string, bool, error) {
	var memberRole string
	err := s.db.Table("team_members").
		Select("role").
		Where("team_id = ? AND user_id = ? AND deleted_at IS NULL", teamID, userID).
		Limit(1).
		Scan(&memberRole).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, err
	}
	if memberRole != "" {
		return memberRole, true, nil
	}

	var creatorID uint
	err = s.db.Table("teams").
		Select("created_by_id").
		Where("id = ? AND deleted_at IS NULL", teamID).
		Limit(1).
		Scan(&creatorID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, err
	}
	if creatorID != 0 && creatorID == userID {
		return TeamRoleAdmin, true, nil
	}

	var visRole string
	err = s.db.Table("team_users").
		Select("role").
		Where("team_id = ? AND user_id = ? AND deleted_at IS NULL", teamID, userID).
		Limit(1).
		Scan(&visRole).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, err
	}
	if visRole != "" {
		return visRole, true, nil
	}

	return "", false, nil
}

// CanView reports whether the user may read the team's data.
func (s *Service) CanView(userID, teamID uint, globalRole string) (bool, error) {
	if globalRole == GlobalSuperuser {
		return true, nil
	}
	_, member, err := s.TeamRole(userID, teamID)
	return member, err
}

// CanManage reports whether the user may mutate the team's data. Managers are
// team admins and coaches; superusers always pass.
func (s *Service) CanManage(userID, teamID uint, globalRole string) (bool, error) {
	if globalRole == GlobalSuperuser {
		return true, nil
	}
	role, member, err := s.TeamRole(userID, teamID)
	if err != nil || !member {
		return false, err
	}
	return role == TeamRoleAdmin || role == TeamRoleCoach, nil
}
