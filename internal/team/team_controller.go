package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/validator"
	"github.com/teamkick/teamkick/utils"
)

const joinCodeLength = 6

// TeamController handles team and roster HTTP requests.
type TeamController struct {
	repo TeamRepository
	auth *authz.Service
}

// NewTeamController creates a new team controller
func NewTeamController(repo TeamRepository, auth *authz.Service) *TeamController {
	return &TeamController{repo: repo, auth: auth}
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=1000"`
	Crest       string `json:"crest"`
	Season      string `json:"season" binding:"max=20"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Crest       *string `json:"crest"`
	Season      *string `json:"season" binding:"omitempty,max=20"`
}

type JoinTeamRequest struct {
	JoinCode string `json:"join_code" binding:"required,min=4,max=12"`
}

type AddMemberRequest struct {
	FullName     string `json:"full_name" binding:"required,max=100"`
	Role         string `json:"role" binding:"omitempty,oneof=admin coach player colaborador"`
	UserID       *uint  `json:"user_id"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number" binding:"omitempty,gte=0,lte=99"`
}

type UpdateMemberRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,max=100"`
	Role         *string `json:"role" binding:"omitempty,oneof=admin coach player colaborador"`
	Position     *string `json:"position"`
	JerseyNumber *int    `json:"jersey_number" binding:"omitempty,gte=0,lte=99"`
	// Unlink detaches the member from its platform account, returning the
	// slot to the unclaimed state.
	Unlink bool `json:"unlink"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

func (tc *TeamController) requireView(c *gin.Context, teamID uint) (uint, bool) {
	return tc.auth.RequireView(c, teamID)
}

func (tc *TeamController) requireManage(c *gin.Context, teamID uint) (uint, bool) {
	return tc.auth.RequireManage(c, teamID)
}

// --- Team Handlers ---

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a team with the caller as creator, rostered as a verified admin.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team data"
// @Success 201 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	newTeam := Team{
		Name:        req.Name,
		Description: req.Description,
		Crest:       req.Crest,
		Season:      req.Season,
		JoinCode:    utils.GenerateJoinCode(joinCodeLength),
		CreatedByID: userID,
	}

	creatorName := req.Name + " admin"
	err = tc.repo.WithTransaction(func(repo TeamRepository) error {
		if err := repo.CreateTeam(&newTeam); err != nil {
			return err
		}
		// The creator starts as a verified admin on their own roster.
		uid := userID
		member := TeamMember{
			TeamID:     newTeam.ID,
			FullName:   creatorName,
			Role:       authz.TeamRoleAdmin,
			UserID:     &uid,
			IsVerified: true,
		}
		if err := repo.AddTeamMember(&member); err != nil {
			return err
		}
		return repo.AddTeamUser(&TeamUser{TeamID: newTeam.ID, UserID: userID, Role: authz.TeamRoleMember})
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to create team")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Team created", newTeam)
}

// ListMyTeams godoc
// @Summary List teams visible to the caller
// @Tags Teams
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Team}
// @Security ApiKeyAuth
// @Router /teams [get]
func (tc *TeamController) ListMyTeams(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	teams, err := tc.repo.GetTeamsByUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list teams")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", teams)
}

// GetTeam godoc
// @Summary Get a team
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := tc.requireView(c, teamID); !ok {
		return
	}

	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", t)
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := tc.requireManage(c, teamID); !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Crest != nil {
		t.Crest = *req.Crest
	}
	if req.Season != nil {
		t.Season = *req.Season
	}

	if err := tc.repo.UpdateTeam(t); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated", t)
}

// DeleteTeam godoc
// @Summary Delete a team and its dependent records
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := tc.requireManage(c, teamID); !ok {
		return
	}

	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	if err := tc.repo.DeleteTeam(teamID); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted", nil)
}

// JoinByCode godoc
// @Summary Join a team using its join code
// @Tags Teams
// @Accept json
// @Produce json
// @Param body body JoinTeamRequest true "Join code"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/join [post]
func (tc *TeamController) JoinByCode(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	t, err := tc.repo.GetTeamByJoinCode(req.JoinCode)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up join code")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team with this join code")
		return
	}

	existing, err := tc.repo.GetTeamUser(t.ID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership")
		return
	}
	if existing != nil {
		responses.Conflict(c, "You already have access to this team")
		return
	}

	if err := tc.repo.AddTeamUser(&TeamUser{TeamID: t.ID, UserID: userID, Role: authz.TeamRoleMember}); err != nil {
		responses.InternalServerError(c, "Failed to join team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Joined team", t)
}

// --- Roster Handlers ---

// ListMembers godoc
// @Summary List a team's roster
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]TeamMember}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/members [get]
func (tc *TeamController) ListMembers(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := tc.requireView(c, teamID); !ok {
		return
	}

	members, err := tc.repo.GetTeamMembers(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list members")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", members)
}

// AddMember godoc
// @Summary Add a roster entry
// @Description Adds a member. With user_id set this is a direct add of a known
// platform user; without it the entry is an unclaimed placeholder.
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param member body AddMemberRequest true "Member data"
// @Success 201 {object} responses.SuccessResponse{data=TeamMember}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/members [post]
func (tc *TeamController) AddMember(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := tc.requireManage(c, teamID); !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	role := req.Role
	if role == "" {
		role = authz.TeamRolePlayer
	}

	member := TeamMember{
		TeamID:       teamID,
		FullName:     req.FullName,
		Role:         role,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
	}

	if req.UserID != nil {
		existing, err := tc.repo.GetTeamMemberByUser(teamID, *req.UserID)
		if err != nil {
			responses.InternalServerError(c, "Failed to check roster")
			return
		}
		if existing != nil {
			responses.Conflict(c, "User is already on this roster")
			return
		}
		member.UserID = req.UserID
		member.IsVerified = true
	}

	err := tc.repo.WithTransaction(func(repo TeamRepository) error {
		if err := repo.AddTeamMember(&member); err != nil {
			return err
		}
		if req.UserID == nil {
			return nil
		}
		tu, err := repo.GetTeamUser(teamID, *req.UserID)
		if err != nil {
			return err
		}
		if tu == nil {
			return repo.AddTeamUser(&TeamUser{TeamID: teamID, UserID: *req.UserID, Role: authz.TeamRoleMember})
		}
		return nil
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to add member")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Member added", member)
}

// UpdateMember godoc
// @Summary Update a roster entry
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param memberId path int true "Member ID"
// @Param member body UpdateMemberRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=TeamMember}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/members/{memberId} [put]
func (tc *TeamController) UpdateMember(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}
	if _, ok := tc.requireManage(c, teamID); !ok {
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	member, err := tc.repo.GetTeamMemberByID(memberID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch member")
		return
	}
	if member == nil || member.TeamID != teamID {
		responses.NotFound(c, "Team member")
		return
	}

	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.Position != nil {
		member.Position = *req.Position
	}
	if req.JerseyNumber != nil {
		member.JerseyNumber = *req.JerseyNumber
	}
	if req.Unlink {
		member.UserID = nil
		member.IsVerified = false
	}

	if err := tc.repo.UpdateTeamMember(member); err != nil {
		responses.InternalServerError(c, "Failed to update member")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member updated", member)
}

// RemoveMember godoc
// @Summary Remove a roster entry
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Param memberId path int true "Member ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/members/{memberId} [delete]
func (tc *TeamController) RemoveMember(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}
	if _, ok := tc.requireManage(c, teamID); !ok {
		return
	}

	member, err := tc.repo.GetTeamMemberByID(memberID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch member")
		return
	}
	if member == nil || member.TeamID != teamID {
		responses.NotFound(c, "Team member")
		return
	}

	if err := tc.repo.RemoveTeamMember(memberID); err != nil {
		responses.InternalServerError(c, "Failed to remove member")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed", nil)
}

// --- Superuser Admin Handlers ---

// AdminListTeams godoc
// @Summary List all teams
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Team name search"
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/teams [get]
func (tc *TeamController) AdminListTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	teams, total, err := tc.repo.GetAllTeams(page, limit, c.Query("search"))
	if err != nil {
		responses.InternalServerError(c, "Failed to list teams")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", teams, total, page, limit)
}

// AdminGetTeam returns any team by id without a membership requirement.
func (tc *TeamController) AdminGetTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", t)
}

// AdminUpdateTeam updates any team by id.
func (tc *TeamController) AdminUpdateTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Crest != nil {
		t.Crest = *req.Crest
	}
	if req.Season != nil {
		t.Season = *req.Season
	}

	if err := tc.repo.UpdateTeam(t); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated", t)
}

// AdminDeleteTeam deletes any team by id.
func (tc *TeamController) AdminDeleteTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	if err := tc.repo.DeleteTeam(teamID); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted", nil)
}
