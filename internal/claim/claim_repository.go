package claim

import (
	"errors"

	"gorm.io/gorm"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/internal/team"
)

// ClaimRepository defines the data operations backing the claim workflow.
type ClaimRepository interface {
	CreateClaim(cl *MemberClaim) error
	GetClaimByID(id uint) (*MemberClaim, error)
	GetClaimsByTeam(teamID uint, status string) ([]MemberClaim, error)
	GetClaimsByUser(teamID, userID uint) ([]MemberClaim, error)
	GetPendingClaimForMember(teamMemberID uint) (*MemberClaim, error)
	UpdateClaim(cl *MemberClaim) error

	GetTeamMemberByID(id uint) (*team.TeamMember, error)
	UpdateTeamMember(m *team.TeamMember) error
	EnsureTeamUser(teamID, userID uint) error

	WithTransaction(txFunc func(ClaimRepository) error) error
}

type claimRepository struct {
	db *gorm.DB
}

// NewClaimRepository creates a new instance of ClaimRepository
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) CreateClaim(cl *MemberClaim) error {
	return r.db.Create(cl).Error
}

func (r *claimRepository) GetClaimByID(id uint) (*MemberClaim, error) {
	var cl MemberClaim
	if err := r.db.First(&cl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cl, nil
}

func (r *claimRepository) GetClaimsByTeam(teamID uint, status string) ([]MemberClaim, error) {
	var claims []MemberClaim
	query := r.db.Where("team_id = ?", teamID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("requested_at desc").Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *claimRepository) GetClaimsByUser(teamID, userID uint) ([]MemberClaim, error) {
	var claims []MemberClaim
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).Order("requested_at desc").Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *claimRepository) GetPendingClaimForMember(teamMemberID uint) (*MemberClaim, error) {
	var cl MemberClaim
	if err := r.db.Where("team_member_id = ? AND status = ?", teamMemberID, StatusPending).First(&cl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cl, nil
}

func (r *claimRepository) UpdateClaim(cl *MemberClaim) error {
	return r.db.Save(cl).Error
}

func (r *claimRepository) GetTeamMemberByID(id uint) (*team.TeamMember, error) {
	var m team.TeamMember
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *claimRepository) UpdateTeamMember(m *team.TeamMember) error {
	return r.db.Save(m).Error
}

// EnsureTeamUser creates the visibility record tying the user to the team if
// it does not exist yet.
func (r *claimRepository) EnsureTeamUser(teamID, userID uint) error {
	var tu team.TeamUser
	err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&tu).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&team.TeamUser{TeamID: teamID, UserID: userID, Role: authz.TeamRoleMember}).Error
}

// WithTransaction runs txFunc against a repository bound to a transaction.
func (r *claimRepository) WithTransaction(txFunc func(ClaimRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&claimRepository{db: tx})
	})
}
