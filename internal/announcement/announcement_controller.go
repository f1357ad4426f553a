package announcement

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/validator"
)

// AnnouncementController handles the team announcement board.
type AnnouncementController struct {
	repo AnnouncementRepository
	auth *authz.Service
}

// NewAnnouncementController creates a new announcement controller
func NewAnnouncementController(repo AnnouncementRepository, auth *authz.Service) *AnnouncementController {
	return &AnnouncementController{repo: repo, auth: auth}
}

type CreateAnnouncementRequest struct {
	Title  string `json:"title" binding:"required,max=150"`
	Body   string `json:"body" binding:"required"`
	Pinned bool   `json:"pinned"`
}

type UpdateAnnouncementRequest struct {
	Title  *string `json:"title" binding:"omitempty,max=150"`
	Body   *string `json:"body"`
	Pinned *bool   `json:"pinned"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// ListAnnouncements godoc
// @Summary List a team's announcements, pinned first
// @Tags Announcements
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Announcement}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/announcements [get]
func (ac *AnnouncementController) ListAnnouncements(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := ac.auth.RequireView(c, teamID); !ok {
		return
	}

	list, err := ac.repo.GetByTeam(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list announcements")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", list)
}

// CreateAnnouncement godoc
// @Summary Post an announcement to the team board
// @Tags Announcements
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param announcement body CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} responses.SuccessResponse{data=Announcement}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/announcements [post]
func (ac *AnnouncementController) CreateAnnouncement(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := ac.auth.RequireManage(c, teamID)
	if !ok {
		return
	}

	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	a := Announcement{
		TeamID:       teamID,
		AuthorUserID: userID,
		Title:        req.Title,
		Body:         req.Body,
		Pinned:       req.Pinned,
	}
	if err := ac.repo.Create(&a); err != nil {
		responses.InternalServerError(c, "Failed to post announcement")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Announcement posted", a)
}

// UpdateAnnouncement godoc
// @Summary Update an announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param announcementId path int true "Announcement ID"
// @Param announcement body UpdateAnnouncementRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Announcement}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/announcements/{announcementId} [put]
func (ac *AnnouncementController) UpdateAnnouncement(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	announcementID, ok := parseIDParam(c, "announcementId")
	if !ok {
		return
	}
	if _, ok := ac.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	a, err := ac.repo.GetByID(announcementID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch announcement")
		return
	}
	if a == nil || a.TeamID != teamID {
		responses.NotFound(c, "Announcement")
		return
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Body != nil {
		a.Body = *req.Body
	}
	if req.Pinned != nil {
		a.Pinned = *req.Pinned
	}

	if err := ac.repo.Update(a); err != nil {
		responses.InternalServerError(c, "Failed to update announcement")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Announcement updated", a)
}

// DeleteAnnouncement godoc
// @Summary Delete an announcement
// @Tags Announcements
// @Produce json
// @Param id path int true "Team ID"
// @Param announcementId path int true "Announcement ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/announcements/{announcementId} [delete]
func (ac *AnnouncementController) DeleteAnnouncement(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	announcementID, ok := parseIDParam(c, "announcementId")
	if !ok {
		return
	}
	if _, ok := ac.auth.RequireManage(c, teamID); !ok {
		return
	}

	a, err := ac.repo.GetByID(announcementID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch announcement")
		return
	}
	if a == nil || a.TeamID != teamID {
		responses.NotFound(c, "Announcement")
		return
	}

	if err := ac.repo.Delete(announcementID); err != nil {
		responses.InternalServerError(c, "Failed to delete announcement")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Announcement deleted", nil)
}
