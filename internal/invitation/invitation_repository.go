package invitation

import (
	"errors"

	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/team"
	"github.com/teamkick/teamkick/internal/user"
)

// InvitationRepository defines the data operations backing team invitations.
type InvitationRepository interface {
	Create(inv *Invitation) error
	GetByID(id uint) (*Invitation, error)
	GetByToken(token string) (*Invitation, error)
	GetByTeam(teamID uint) ([]Invitation, error)
	GetPendingByTeamAndEmail(teamID uint, email string) (*Invitation, error)
	Update(inv *Invitation) error

	GetTeamByID(id uint) (*team.Team, error)
	GetUserByID(id uint) (*user.User, error)
	GetTeamUser(teamID, userID uint) (*team.TeamUser, error)
	CreateTeamUser(tu *team.TeamUser) error

	WithTransaction(txFunc func(InvitationRepository) error) error
}

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new instance of InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(inv *Invitation) error {
	return r.db.Create(inv).Error
}

func (r *invitationRepository) GetByID(id uint) (*Invitation, error) {
	var inv Invitation
	if err := r.db.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepository) GetByToken(token string) (*Invitation, error) {
	var inv Invitation
	if err := r.db.Where("token = ?", token).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepository) GetByTeam(teamID uint) ([]Invitation, error) {
	var list []Invitation
	if err := r.db.Where("team_id = ?", teamID).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *invitationRepository) GetPendingByTeamAndEmail(teamID uint, email string) (*Invitation, error) {
	var inv Invitation
	if err := r.db.Where("team_id = ? AND email = ? AND status = ?", teamID, email, StatusPending).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepository) Update(inv *Invitation) error {
	return r.db.Save(inv).Error
}

func (r *invitationRepository) GetTeamByID(id uint) (*team.Team, error) {
	var t team.Team
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *invitationRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *invitationRepository) GetTeamUser(teamID, userID uint) (*team.TeamUser, error) {
	var tu team.TeamUser
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&tu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tu, nil
}

func (r *invitationRepository) CreateTeamUser(tu *team.TeamUser) error {
	return r.db.Create(tu).Error
}

// WithTransaction runs txFunc against a repository bound to a transaction.
func (r *invitationRepository) WithTransaction(txFunc func(InvitationRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&invitationRepository{db: tx})
	})
}
