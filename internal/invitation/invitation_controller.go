package invitation

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/internal/team"
	"github.com/teamkick/teamkick/pkg/mailer"
	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/validator"
)

// invitationTTL is how long an invite stays acceptable.
const invitationTTL = 7 * 24 * time.Hour

var (
	errInviteNotPending = errors.New("invitation is not pending")
	errInviteExpired    = errors.New("invitation has expired")
	errAlreadyInTeam    = errors.New("user already belongs to the team")
)

// InvitationController handles email invitations to join a team.
type InvitationController struct {
	repo        InvitationRepository
	auth        *authz.Service
	mail        *mailer.Mailer
	frontendURL string
}

// NewInvitationController creates a new invitation controller
func NewInvitationController(repo InvitationRepository, auth *authz.Service, mail *mailer.Mailer, frontendURL string) *InvitationController {
	return &InvitationController{repo: repo, auth: auth, mail: mail, frontendURL: frontendURL}
}

type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=member colaborador"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required,uuid"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// expireIfDue flips a pending invitation past its deadline to expired.
func (ic *InvitationController) expireIfDue(repo InvitationRepository, inv *Invitation) error {
	if inv.Status == StatusPending && time.Now().After(inv.ExpiresAt) {
		inv.Status = StatusExpired
		return repo.Update(inv)
	}
	return nil
}

// CreateInvitation godoc
// @Summary Invite someone to a team by email
// @Tags Invitations
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param invitation body CreateInvitationRequest true "Invitation"
// @Success 201 {object} responses.SuccessResponse{data=Invitation}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/invitations [post]
func (ic *InvitationController) CreateInvitation(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := ic.auth.RequireManage(c, teamID)
	if !ok {
		return
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}
	if req.Role == "" {
		req.Role = authz.TeamRoleMember
	}

	existing, err := ic.repo.GetPendingByTeamAndEmail(teamID, req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to check existing invitations")
		return
	}
	if existing != nil && !time.Now().After(existing.ExpiresAt) {
		responses.Conflict(c, "A pending invitation already exists for this email")
		return
	}

	inv := Invitation{
		TeamID:      teamID,
		Email:       req.Email,
		Role:        req.Role,
		Token:       uuid.NewString(),
		Status:      StatusPending,
		ExpiresAt:   time.Now().Add(invitationTTL),
		InvitedByID: userID,
	}
	if err := ic.repo.Create(&inv); err != nil {
		responses.InternalServerError(c, "Failed to create invitation")
		return
	}

	ic.sendInvitationMail(&inv, userID)

	responses.SendSuccess(c, http.StatusCreated, "Invitation sent", inv)
}

// sendInvitationMail is best effort: a mail failure does not undo the invite.
func (ic *InvitationController) sendInvitationMail(inv *Invitation, inviterID uint) {
	if !ic.mail.Enabled() {
		return
	}

	teamName := "your team"
	if t, err := ic.repo.GetTeamByID(inv.TeamID); err == nil && t != nil {
		teamName = t.Name
	}
	inviterName := "A team manager"
	if u, err := ic.repo.GetUserByID(inviterID); err == nil && u != nil && u.FullName != "" {
		inviterName = u.FullName
	}

	acceptURL := fmt.Sprintf("%s/invitations/accept?token=%s", ic.frontendURL, inv.Token)
	_ = ic.mail.SendInvitation(inv.Email, teamName, inviterName, acceptURL)
}

// ListInvitations godoc
// @Summary List a team's invitations
// @Tags Invitations
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Invitation}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/invitations [get]
func (ic *InvitationController) ListInvitations(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := ic.auth.RequireManage(c, teamID); !ok {
		return
	}

	list, err := ic.repo.GetByTeam(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list invitations")
		return
	}
	for i := range list {
		if err := ic.expireIfDue(ic.repo, &list[i]); err != nil {
			responses.InternalServerError(c, "Failed to refresh invitations")
			return
		}
	}
	responses.SendSuccess(c, http.StatusOK, "", list)
}

// RevokeInvitation godoc
// @Summary Revoke a pending invitation
// @Tags Invitations
// @Produce json
// @Param id path int true "Team ID"
// @Param invitationId path int true "Invitation ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/invitations/{invitationId} [delete]
func (ic *InvitationController) RevokeInvitation(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	invitationID, ok := parseIDParam(c, "invitationId")
	if !ok {
		return
	}
	if _, ok := ic.auth.RequireManage(c, teamID); !ok {
		return
	}

	inv, err := ic.repo.GetByID(invitationID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch invitation")
		return
	}
	if inv == nil || inv.TeamID != teamID {
		responses.NotFound(c, "Invitation")
		return
	}
	if inv.Terminal() {
		responses.Conflict(c, "Invitation is no longer pending")
		return
	}

	inv.Status = StatusRevoked
	if err := ic.repo.Update(inv); err != nil {
		responses.InternalServerError(c, "Failed to revoke invitation")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invitation revoked", nil)
}

// AcceptInvitation godoc
// @Summary Accept a team invitation by token
// @Tags Invitations
// @Accept json
// @Produce json
// @Param invitation body AcceptInvitationRequest true "Invitation token"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /invitations/accept [post]
func (ic *InvitationController) AcceptInvitation(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	var accepted *Invitation
	txErr := ic.repo.WithTransaction(func(repo InvitationRepository) error {
		inv, err := repo.GetByToken(req.Token)
		if err != nil {
			return err
		}
		if inv == nil {
			return errInviteNotPending
		}
		if err := ic.expireIfDue(repo, inv); err != nil {
			return err
		}
		if inv.Status == StatusExpired {
			return errInviteExpired
		}
		if inv.Status != StatusPending {
			return errInviteNotPending
		}

		existing, err := repo.GetTeamUser(inv.TeamID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return errAlreadyInTeam
		}

		if err := repo.CreateTeamUser(&team.TeamUser{
			TeamID: inv.TeamID,
			UserID: userID,
			Role:   inv.Role,
		}); err != nil {
			return err
		}

		now := time.Now()
		inv.Status = StatusAccepted
		inv.AcceptedAt = &now
		if err := repo.Update(inv); err != nil {
			return err
		}

		accepted = inv
		return nil
	})

	switch {
	case txErr == nil:
		responses.SendSuccess(c, http.StatusOK, "Invitation accepted", gin.H{"team_id": accepted.TeamID})
	case errors.Is(txErr, errInviteNotPending):
		responses.NotFound(c, "Invitation")
	case errors.Is(txErr, errInviteExpired):
		responses.SendError(c, http.StatusConflict, responses.KindConflict, "Invitation has expired")
	case errors.Is(txErr, errAlreadyInTeam):
		responses.Conflict(c, "You already belong to this team")
	default:
		responses.InternalServerError(c, "Failed to accept invitation")
	}
}
