package stats

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/validator"
)

// StatsController handles player statistics and the league standings table.
type StatsController struct {
	repo StatsRepository
	auth *authz.Service
}

// NewStatsController creates a new stats controller
func NewStatsController(repo StatsRepository, auth *authz.Service) *StatsController {
	return &StatsController{repo: repo, auth: auth}
}

type CreateStatRequest struct {
	TeamMemberID  uint   `json:"team_member_id" binding:"required"`
	MatchID       *uint  `json:"match_id"`
	Season        string `json:"season" binding:"max=20"`
	Goals         int    `json:"goals" binding:"gte=0"`
	Assists       int    `json:"assists" binding:"gte=0"`
	YellowCards   int    `json:"yellow_cards" binding:"gte=0,lte=2"`
	RedCards      int    `json:"red_cards" binding:"gte=0,lte=1"`
	MinutesPlayed int    `json:"minutes_played" binding:"gte=0,lte=150"`
}

type UpdateStatRequest struct {
	Goals         *int `json:"goals" binding:"omitempty,gte=0"`
	Assists       *int `json:"assists" binding:"omitempty,gte=0"`
	YellowCards   *int `json:"yellow_cards" binding:"omitempty,gte=0,lte=2"`
	RedCards      *int `json:"red_cards" binding:"omitempty,gte=0,lte=1"`
	MinutesPlayed *int `json:"minutes_played" binding:"omitempty,gte=0,lte=150"`
}

type ClassificationRowRequest struct {
	RivalName    string `json:"rival_name" binding:"required,max=100"`
	Position     int    `json:"position" binding:"gte=0"`
	Played       int    `json:"played" binding:"gte=0"`
	Won          int    `json:"won" binding:"gte=0"`
	Drawn        int    `json:"drawn" binding:"gte=0"`
	Lost         int    `json:"lost" binding:"gte=0"`
	GoalsFor     int    `json:"goals_for" binding:"gte=0"`
	GoalsAgainst int    `json:"goals_against" binding:"gte=0"`
	Points       int    `json:"points" binding:"gte=0"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// ListStats godoc
// @Summary List a team's player stats
// @Tags Stats
// @Produce json
// @Param id path int true "Team ID"
// @Param season query string false "Season filter"
// @Param totals query bool false "Return season aggregates per member"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/stats [get]
func (sc *StatsController) ListStats(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := sc.auth.RequireView(c, teamID); !ok {
		return
	}

	season := c.Query("season")
	if c.Query("totals") == "true" {
		totals, err := sc.repo.GetSeasonTotals(teamID, season)
		if err != nil {
			responses.InternalServerError(c, "Failed to aggregate stats")
			return
		}
		responses.SendSuccess(c, http.StatusOK, "", totals)
		return
	}

	list, err := sc.repo.GetStatsByTeam(teamID, season)
	if err != nil {
		responses.InternalServerError(c, "Failed to list stats")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", list)
}

// ListMemberStats godoc
// @Summary List stat lines for a single roster member
// @Tags Stats
// @Produce json
// @Param id path int true "Team ID"
// @Param memberId path int true "Team member ID"
// @Param season query string false "Season filter"
// @Success 200 {object} responses.SuccessResponse{data=[]PlayerStat}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/members/{memberId}/stats [get]
func (sc *StatsController) ListMemberStats(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}
	if _, ok := sc.auth.RequireView(c, teamID); !ok {
		return
	}

	list, err := sc.repo.GetStatsByMember(memberID, c.Query("season"))
	if err != nil {
		responses.InternalServerError(c, "Failed to list stats")
		return
	}
	// filter out rows that belong to another team's roster entry
	filtered := make([]PlayerStat, 0, len(list))
	for _, s := range list {
		if s.TeamID == teamID {
			filtered = append(filtered, s)
		}
	}
	responses.SendSuccess(c, http.StatusOK, "", filtered)
}

// CreateStat godoc
// @Summary Record player stats
// @Tags Stats
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param stat body CreateStatRequest true "Stat line"
// @Success 201 {object} responses.SuccessResponse{data=PlayerStat}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/stats [post]
func (sc *StatsController) CreateStat(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := sc.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req CreateStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	s := PlayerStat{
		TeamID:        teamID,
		TeamMemberID:  req.TeamMemberID,
		MatchID:       req.MatchID,
		Season:        req.Season,
		Goals:         req.Goals,
		Assists:       req.Assists,
		YellowCards:   req.YellowCards,
		RedCards:      req.RedCards,
		MinutesPlayed: req.MinutesPlayed,
	}
	if err := sc.repo.CreateStat(&s); err != nil {
		responses.InternalServerError(c, "Failed to record stats")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Stats recorded", s)
}

// UpdateStat godoc
// @Summary Update a recorded stat line
// @Tags Stats
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param statId path int true "Stat ID"
// @Param stat body UpdateStatRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=PlayerStat}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/stats/{statId} [put]
func (sc *StatsController) UpdateStat(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	statID, ok := parseIDParam(c, "statId")
	if !ok {
		return
	}
	if _, ok := sc.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req UpdateStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	s, err := sc.repo.GetStatByID(statID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch stat")
		return
	}
	if s == nil || s.TeamID != teamID {
		responses.NotFound(c, "Stat")
		return
	}

	if req.Goals != nil {
		s.Goals = *req.Goals
	}
	if req.Assists != nil {
		s.Assists = *req.Assists
	}
	if req.YellowCards != nil {
		s.YellowCards = *req.YellowCards
	}
	if req.RedCards != nil {
		s.RedCards = *req.RedCards
	}
	if req.MinutesPlayed != nil {
		s.MinutesPlayed = *req.MinutesPlayed
	}

	if err := sc.repo.UpdateStat(s); err != nil {
		responses.InternalServerError(c, "Failed to update stat")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Stat updated", s)
}

// DeleteStat godoc
// @Summary Delete a recorded stat line
// @Tags Stats
// @Produce json
// @Param id path int true "Team ID"
// @Param statId path int true "Stat ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/stats/{statId} [delete]
func (sc *StatsController) DeleteStat(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	statID, ok := parseIDParam(c, "statId")
	if !ok {
		return
	}
	if _, ok := sc.auth.RequireManage(c, teamID); !ok {
		return
	}

	s, err := sc.repo.GetStatByID(statID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch stat")
		return
	}
	if s == nil || s.TeamID != teamID {
		responses.NotFound(c, "Stat")
		return
	}

	if err := sc.repo.DeleteStat(statID); err != nil {
		responses.InternalServerError(c, "Failed to delete stat")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Stat deleted", nil)
}

// GetClassification godoc
// @Summary Get the league standings table
// @Tags Stats
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]LeagueClassification}
// @Security ApiKeyAuth
// @Router /teams/{id}/classification [get]
func (sc *StatsController) GetClassification(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := sc.auth.RequireView(c, teamID); !ok {
		return
	}

	rows, err := sc.repo.GetClassification(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch classification")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", rows)
}

// CreateClassificationRow godoc
// @Summary Add a league standings row
// @Tags Stats
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param row body ClassificationRowRequest true "Standings row"
// @Success 201 {object} responses.SuccessResponse{data=LeagueClassification}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/classification [post]
func (sc *StatsController) CreateClassificationRow(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := sc.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req ClassificationRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	row := LeagueClassification{
		TeamID:       teamID,
		RivalName:    req.RivalName,
		Position:     req.Position,
		Played:       req.Played,
		Won:          req.Won,
		Drawn:        req.Drawn,
		Lost:         req.Lost,
		GoalsFor:     req.GoalsFor,
		GoalsAgainst: req.GoalsAgainst,
		Points:       req.Points,
	}
	if err := sc.repo.CreateClassificationRow(&row); err != nil {
		responses.InternalServerError(c, "Failed to add classification row")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Classification row added", row)
}

// UpdateClassificationRow godoc
// @Summary Update a league standings row
// @Tags Stats
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param rowId path int true "Row ID"
// @Param row body ClassificationRowRequest true "Standings row"
// @Success 200 {object} responses.SuccessResponse{data=LeagueClassification}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/classification/{rowId} [put]
func (sc *StatsController) UpdateClassificationRow(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := parseIDParam(c, "rowId")
	if !ok {
		return
	}
	if _, ok := sc.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req ClassificationRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	row, err := sc.repo.GetClassificationRowByID(rowID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch classification row")
		return
	}
	if row == nil || row.TeamID != teamID {
		responses.NotFound(c, "Classification row")
		return
	}

	row.RivalName = req.RivalName
	row.Position = req.Position
	row.Played = req.Played
	row.Won = req.Won
	row.Drawn = req.Drawn
	row.Lost = req.Lost
	row.GoalsFor = req.GoalsFor
	row.GoalsAgainst = req.GoalsAgainst
	row.Points = req.Points

	if err := sc.repo.UpdateClassificationRow(row); err != nil {
		responses.InternalServerError(c, "Failed to update classification row")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Classification row updated", row)
}

// DeleteClassificationRow godoc
// @Summary Delete a league standings row
// @Tags Stats
// @Produce json
// @Param id path int true "Team ID"
// @Param rowId path int true "Row ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/classification/{rowId} [delete]
func (sc *StatsController) DeleteClassificationRow(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := parseIDParam(c, "rowId")
	if !ok {
		return
	}
	if _, ok := sc.auth.RequireManage(c, teamID); !ok {
		return
	}

	row, err := sc.repo.GetClassificationRowByID(rowID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch classification row")
		return
	}
	if row == nil || row.TeamID != teamID {
		responses.NotFound(c, "Classification row")
		return
	}

	if err := sc.repo.DeleteClassificationRow(rowID); err != nil {
		responses.InternalServerError(c, "Failed to delete classification row")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Classification row deleted", nil)
}
