package claim

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/validator"
)

// Sentinel errors surfaced from the transactional workflow steps so the
// handler can pick the right HTTP status.
var (
	errClaimNotPending    = errors.New("claim is not pending")
	errMemberClaimed      = errors.New("member is already claimed")
	errDuplicatePending   = errors.New("member already has a pending claim")
	errMemberNotFound     = errors.New("member not found")
	errMemberTeamMismatch = errors.New("member does not belong to this team")
)

// ClaimController handles the member-claim workflow.
type ClaimController struct {
	repo ClaimRepository
	auth *authz.Service
}

// NewClaimController creates a new claim controller
func NewClaimController(repo ClaimRepository, auth *authz.Service) *ClaimController {
	return &ClaimController{repo: repo, auth: auth}
}

type SubmitClaimRequest struct {
	TeamMemberID uint `json:"team_member_id" binding:"required"`
}

type RejectClaimRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// SubmitClaim godoc
// @Summary Claim an unclaimed roster entry
// @Description The caller asserts they are the person behind an unclaimed
// roster entry. A claim is always made for the caller's own account.
// @Tags Claims
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param claim body SubmitClaimRequest true "Target roster entry"
// @Success 201 {object} responses.SuccessResponse{data=MemberClaim}
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/claims [post]
func (cc *ClaimController) SubmitClaim(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	newClaim := MemberClaim{
		TeamID:       teamID,
		TeamMemberID: req.TeamMemberID,
		UserID:       userID,
		Status:       StatusPending,
		RequestedAt:  time.Now(),
	}

	// The existence, team and uniqueness checks run inside one transaction so
	// two concurrent submissions cannot both pass them.
	err = cc.repo.WithTransaction(func(repo ClaimRepository) error {
		member, err := repo.GetTeamMemberByID(req.TeamMemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return errMemberNotFound
		}
		if member.TeamID != teamID {
			return errMemberTeamMismatch
		}
		if !member.Unclaimed() {
			return errMemberClaimed
		}
		pending, err := repo.GetPendingClaimForMember(req.TeamMemberID)
		if err != nil {
			return err
		}
		if pending != nil {
			return errDuplicatePending
		}
		return repo.CreateClaim(&newClaim)
	})

	switch {
	case err == nil:
		responses.SendSuccess(c, http.StatusCreated, "Claim submitted", newClaim)
	case errors.Is(err, errMemberNotFound), errors.Is(err, errMemberTeamMismatch):
		responses.NotFound(c, "Team member")
	case errors.Is(err, errMemberClaimed):
		responses.Conflict(c, "This roster entry is already linked to an account")
	case errors.Is(err, errDuplicatePending):
		responses.Conflict(c, "This roster entry already has a pending claim")
	default:
		responses.InternalServerError(c, "Failed to submit claim")
	}
}

// ListClaims godoc
// @Summary List claims for a team
// @Description Team admins and coaches see every claim, optionally filtered
// by status; other members see only their own claims.
// @Tags Claims
// @Produce json
// @Param id path int true "Team ID"
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Success 200 {object} responses.SuccessResponse{data=[]MemberClaim}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/claims [get]
func (cc *ClaimController) ListClaims(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	globalRole := middleware.GetRoleFromContext(c)
	canManage, err := cc.auth.CanManage(userID, teamID, globalRole)
	if err != nil {
		responses.InternalServerError(c, "Failed to check team access")
		return
	}

	if canManage {
		status := c.Query("status")
		if status != "" && status != StatusPending && status != StatusApproved && status != StatusRejected {
			responses.BadRequest(c, "Invalid status filter")
			return
		}
		claims, err := cc.repo.GetClaimsByTeam(teamID, status)
		if err != nil {
			responses.InternalServerError(c, "Failed to list claims")
			return
		}
		responses.SendSuccess(c, http.StatusOK, "", claims)
		return
	}

	canView, err := cc.auth.CanView(userID, teamID, globalRole)
	if err != nil {
		responses.InternalServerError(c, "Failed to check team access")
		return
	}
	if !canView {
		responses.Forbidden(c, "You are not a member of this team")
		return
	}

	claims, err := cc.repo.GetClaimsByUser(teamID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list claims")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", claims)
}

// ApproveClaim godoc
// @Summary Approve a pending claim
// @Description Marks the claim approved and links the roster entry to the
// claiming account in one transaction.
// @Tags Claims
// @Produce json
// @Param id path int true "Team ID"
// @Param claimId path int true "Claim ID"
// @Success 200 {object} responses.SuccessResponse{data=MemberClaim}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/claims/{claimId}/approve [post]
func (cc *ClaimController) ApproveClaim(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claimID, ok := parseIDParam(c, "claimId")
	if !ok {
		return
	}

	reviewerID, ok := cc.requireManage(c, teamID)
	if !ok {
		return
	}

	var approved *MemberClaim
	err := cc.repo.WithTransaction(func(repo ClaimRepository) error {
		cl, err := repo.GetClaimByID(claimID)
		if err != nil {
			return err
		}
		if cl == nil || cl.TeamID != teamID {
			return errMemberNotFound
		}
		if cl.Status != StatusPending {
			return errClaimNotPending
		}

		member, err := repo.GetTeamMemberByID(cl.TeamMemberID)
		if err != nil {
			return err
		}
		if member == nil || member.TeamID != teamID {
			return errMemberNotFound
		}
		if !member.Unclaimed() {
			return errMemberClaimed
		}

		now := time.Now()
		cl.Status = StatusApproved
		cl.ReviewedAt = &now
		cl.ReviewedByID = &reviewerID
		if err := repo.UpdateClaim(cl); err != nil {
			return err
		}

		claimUserID := cl.UserID
		member.UserID = &claimUserID
		member.IsVerified = true
		if err := repo.UpdateTeamMember(member); err != nil {
			return err
		}

		if err := repo.EnsureTeamUser(teamID, cl.UserID); err != nil {
			return err
		}

		approved = cl
		return nil
	})

	switch {
	case err == nil:
		responses.SendSuccess(c, http.StatusOK, "Claim approved", approved)
	case errors.Is(err, errMemberNotFound):
		responses.NotFound(c, "Claim")
	case errors.Is(err, errClaimNotPending):
		responses.Conflict(c, "Claim has already been reviewed")
	case errors.Is(err, errMemberClaimed):
		responses.Conflict(c, "Roster entry was linked to another account in the meantime")
	default:
		responses.InternalServerError(c, "Failed to approve claim")
	}
}

// RejectClaim godoc
// @Summary Reject a pending claim
// @Description Marks the claim rejected with an optional reason. The roster
// entry stays unclaimed and open to a future claim.
// @Tags Claims
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param claimId path int true "Claim ID"
// @Param body body RejectClaimRequest false "Rejection reason"
// @Success 200 {object} responses.SuccessResponse{data=MemberClaim}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/claims/{claimId}/reject [post]
func (cc *ClaimController) RejectClaim(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claimID, ok := parseIDParam(c, "claimId")
	if !ok {
		return
	}

	reviewerID, ok := cc.requireManage(c, teamID)
	if !ok {
		return
	}

	var req RejectClaimRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.ValidationFailed(c, validator.ParseError(err))
			return
		}
	}

	var rejected *MemberClaim
	err := cc.repo.WithTransaction(func(repo ClaimRepository) error {
		cl, err := repo.GetClaimByID(claimID)
		if err != nil {
			return err
		}
		if cl == nil || cl.TeamID != teamID {
			return errMemberNotFound
		}
		if cl.Status != StatusPending {
			return errClaimNotPending
		}

		now := time.Now()
		cl.Status = StatusRejected
		cl.ReviewedAt = &now
		cl.ReviewedByID = &reviewerID
		cl.RejectionReason = req.Reason
		if err := repo.UpdateClaim(cl); err != nil {
			return err
		}

		rejected = cl
		return nil
	})

	switch {
	case err == nil:
		responses.SendSuccess(c, http.StatusOK, "Claim rejected", rejected)
	case errors.Is(err, errMemberNotFound):
		responses.NotFound(c, "Claim")
	case errors.Is(err, errClaimNotPending):
		responses.Conflict(c, "Claim has already been reviewed")
	default:
		responses.InternalServerError(c, "Failed to reject claim")
	}
}

func (cc *ClaimController) requireManage(c *gin.Context, teamID uint) (uint, bool) {
	return cc.auth.RequireManage(c, teamID)
}
