package match

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/internal/models"
	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/validator"
)

// MatchController handles match scheduling and lineup HTTP requests.
type MatchController struct {
	repo MatchRepository
	auth *authz.Service
}

// NewMatchController creates a new match controller
func NewMatchController(repo MatchRepository, auth *authz.Service) *MatchController {
	return &MatchController{repo: repo, auth: auth}
}

type CreateMatchRequest struct {
	Opponent  string    `json:"opponent" binding:"required,max=100"`
	KickoffAt time.Time `json:"kickoff_at" binding:"required"`
	Location  string    `json:"location" binding:"max=200"`
	IsHome    *bool     `json:"is_home"`
	Notes     string    `json:"notes" binding:"max=1000"`
}

type UpdateMatchRequest struct {
	Opponent     *string    `json:"opponent" binding:"omitempty,max=100"`
	KickoffAt    *time.Time `json:"kickoff_at"`
	Location     *string    `json:"location" binding:"omitempty,max=200"`
	IsHome       *bool      `json:"is_home"`
	Status       *string    `json:"status" binding:"omitempty,oneof=scheduled played cancelled"`
	GoalsFor     *int       `json:"goals_for" binding:"omitempty,gte=0"`
	GoalsAgainst *int       `json:"goals_against" binding:"omitempty,gte=0"`
	Notes        *string    `json:"notes" binding:"omitempty,max=1000"`
}

type SaveLineupRequest struct {
	Formation   string            `json:"formation" binding:"required,max=10"`
	Assignments map[string]string `json:"assignments" binding:"required"`
}

type CreateTeamLineupRequest struct {
	Name        string            `json:"name" binding:"required,max=50"`
	Formation   string            `json:"formation" binding:"required,max=10"`
	Assignments map[string]string `json:"assignments"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// ListMatches godoc
// @Summary List a team's matches
// @Tags Matches
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Match}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/matches [get]
func (mc *MatchController) ListMatches(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireView(c, teamID); !ok {
		return
	}

	matches, err := mc.repo.GetMatchesByTeam(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list matches")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", matches)
}

// CreateMatch godoc
// @Summary Schedule a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param match body CreateMatchRequest true "Match data"
// @Success 201 {object} responses.SuccessResponse{data=Match}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	isHome := true
	if req.IsHome != nil {
		isHome = *req.IsHome
	}

	m := Match{
		TeamID:    teamID,
		Opponent:  req.Opponent,
		KickoffAt: req.KickoffAt,
		Location:  req.Location,
		IsHome:    isHome,
		Status:    StatusScheduled,
		Notes:     req.Notes,
	}
	if err := mc.repo.CreateMatch(&m); err != nil {
		responses.InternalServerError(c, "Failed to create match")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match scheduled", m)
}

// GetMatch godoc
// @Summary Get a match
// @Tags Matches
// @Produce json
// @Param id path int true "Team ID"
// @Param matchId path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/matches/{matchId} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireView(c, teamID); !ok {
		return
	}

	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if m == nil || m.TeamID != teamID {
		responses.NotFound(c, "Match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", m)
}

// UpdateMatch godoc
// @Summary Update a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param matchId path int true "Match ID"
// @Param match body UpdateMatchRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/matches/{matchId} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if m == nil || m.TeamID != teamID {
		responses.NotFound(c, "Match")
		return
	}

	if req.Opponent != nil {
		m.Opponent = *req.Opponent
	}
	if req.KickoffAt != nil {
		m.KickoffAt = *req.KickoffAt
	}
	if req.Location != nil {
		m.Location = *req.Location
	}
	if req.IsHome != nil {
		m.IsHome = *req.IsHome
	}
	if req.Status != nil {
		m.Status = MatchStatus(*req.Status)
	}
	if req.GoalsFor != nil {
		m.GoalsFor = *req.GoalsFor
	}
	if req.GoalsAgainst != nil {
		m.GoalsAgainst = *req.GoalsAgainst
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}

	if err := mc.repo.UpdateMatch(m); err != nil {
		responses.InternalServerError(c, "Failed to update match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match updated", m)
}

// DeleteMatch godoc
// @Summary Delete a match and its lineup
// @Tags Matches
// @Produce json
// @Param id path int true "Team ID"
// @Param matchId path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/matches/{matchId} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireManage(c, teamID); !ok {
		return
	}

	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if m == nil || m.TeamID != teamID {
		responses.NotFound(c, "Match")
		return
	}

	if err := mc.repo.DeleteMatch(matchID); err != nil {
		responses.InternalServerError(c, "Failed to delete match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match deleted", nil)
}

// GetLineup godoc
// @Summary Get the saved lineup for a match
// @Tags Matches
// @Produce json
// @Param id path int true "Team ID"
// @Param matchId path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchLineup}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/matches/{matchId}/lineup [get]
func (mc *MatchController) GetLineup(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireView(c, teamID); !ok {
		return
	}

	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if m == nil || m.TeamID != teamID {
		responses.NotFound(c, "Match")
		return
	}

	l, err := mc.repo.GetLineup(matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch lineup")
		return
	}
	if l == nil {
		responses.NotFound(c, "Lineup")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", l)
}

// SaveLineup godoc
// @Summary Save the formation and position assignments for a match
// @Description Replaces the whole lineup for the match in a single write.
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param matchId path int true "Match ID"
// @Param lineup body SaveLineupRequest true "Formation and assignments"
// @Success 200 {object} responses.SuccessResponse{data=MatchLineup}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/matches/{matchId}/lineup [post]
func (mc *MatchController) SaveLineup(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req SaveLineupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if m == nil || m.TeamID != teamID {
		responses.NotFound(c, "Match")
		return
	}

	l := MatchLineup{
		MatchID:     matchID,
		TeamID:      teamID,
		Formation:   req.Formation,
		Assignments: models.JSONMap(req.Assignments),
	}
	if err := mc.repo.SaveLineup(&l); err != nil {
		responses.InternalServerError(c, "Failed to save lineup")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Lineup saved", l)
}

// ListTeamLineups godoc
// @Summary List a team's lineup templates
// @Tags Matches
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]TeamLineup}
// @Security ApiKeyAuth
// @Router /teams/{id}/lineups [get]
func (mc *MatchController) ListTeamLineups(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireView(c, teamID); !ok {
		return
	}

	lineups, err := mc.repo.GetTeamLineups(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list lineups")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", lineups)
}

// CreateTeamLineup godoc
// @Summary Save a reusable lineup template
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param lineup body CreateTeamLineupRequest true "Template data"
// @Success 201 {object} responses.SuccessResponse{data=TeamLineup}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/lineups [post]
func (mc *MatchController) CreateTeamLineup(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req CreateTeamLineupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	l := TeamLineup{
		TeamID:      teamID,
		Name:        req.Name,
		Formation:   req.Formation,
		Assignments: models.JSONMap(req.Assignments),
	}
	if err := mc.repo.CreateTeamLineup(&l); err != nil {
		responses.InternalServerError(c, "Failed to save lineup template")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Lineup template saved", l)
}

// DeleteTeamLineup godoc
// @Summary Delete a lineup template
// @Tags Matches
// @Produce json
// @Param id path int true "Team ID"
// @Param lineupId path int true "Lineup template ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/lineups/{lineupId} [delete]
func (mc *MatchController) DeleteTeamLineup(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	lineupID, ok := parseIDParam(c, "lineupId")
	if !ok {
		return
	}
	if _, ok := mc.auth.RequireManage(c, teamID); !ok {
		return
	}

	l, err := mc.repo.GetTeamLineupByID(lineupID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch lineup template")
		return
	}
	if l == nil || l.TeamID != teamID {
		responses.NotFound(c, "Lineup template")
		return
	}

	if err := mc.repo.DeleteTeamLineup(lineupID); err != nil {
		responses.InternalServerError(c, "Failed to delete lineup template")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Lineup template deleted", nil)
}
