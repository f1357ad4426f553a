package event

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/validator"
)

// EventController handles team events and attendance tracking.
type EventController struct {
	repo EventRepository
	auth *authz.Service
}

// NewEventController creates a new event controller
func NewEventController(repo EventRepository, auth *authz.Service) *EventController {
	return &EventController{repo: repo, auth: auth}
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=100"`
	Type        string    `json:"type" binding:"omitempty,oneof=training meeting social other"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at"`
	Location    string    `json:"location" binding:"max=200"`
	Description string    `json:"description" binding:"max=1000"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=100"`
	Type        *string    `json:"type" binding:"omitempty,oneof=training meeting social other"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Location    *string    `json:"location" binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
}

type SetAttendanceRequest struct {
	TeamMemberID uint   `json:"team_member_id" binding:"required"`
	Status       string `json:"status" binding:"required,oneof=attending absent maybe"`
	Note         string `json:"note" binding:"max=300"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// ListEvents godoc
// @Summary List a team's events
// @Tags Events
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Event}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/events [get]
func (ec *EventController) ListEvents(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := ec.auth.RequireView(c, teamID); !ok {
		return
	}

	events, err := ec.repo.GetEventsByTeam(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list events")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", events)
}

// CreateEvent godoc
// @Summary Create a team event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} responses.SuccessResponse{data=Event}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/events [post]
func (ec *EventController) CreateEvent(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := ec.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	evType := req.Type
	if evType == "" {
		evType = TypeTraining
	}

	e := Event{
		TeamID:      teamID,
		Title:       req.Title,
		Type:        evType,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := ec.repo.CreateEvent(&e); err != nil {
		responses.InternalServerError(c, "Failed to create event")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Event created", e)
}

// UpdateEvent godoc
// @Summary Update a team event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param eventId path int true "Event ID"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Event}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/events/{eventId} [put]
func (ec *EventController) UpdateEvent(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	if _, ok := ec.auth.RequireManage(c, teamID); !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return
	}
	if e == nil || e.TeamID != teamID {
		responses.NotFound(c, "Event")
		return
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Type != nil {
		e.Type = *req.Type
	}
	if req.StartsAt != nil {
		e.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		e.EndsAt = *req.EndsAt
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Description != nil {
		e.Description = *req.Description
	}

	if err := ec.repo.UpdateEvent(e); err != nil {
		responses.InternalServerError(c, "Failed to update event")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event updated", e)
}

// DeleteEvent godoc
// @Summary Delete a team event and its attendance
// @Tags Events
// @Produce json
// @Param id path int true "Team ID"
// @Param eventId path int true "Event ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/events/{eventId} [delete]
func (ec *EventController) DeleteEvent(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	if _, ok := ec.auth.RequireManage(c, teamID); !ok {
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return
	}
	if e == nil || e.TeamID != teamID {
		responses.NotFound(c, "Event")
		return
	}

	if err := ec.repo.DeleteEvent(eventID); err != nil {
		responses.InternalServerError(c, "Failed to delete event")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event deleted", nil)
}

// ListEventAttendance godoc
// @Summary List attendance for an event
// @Tags Events
// @Produce json
// @Param id path int true "Team ID"
// @Param eventId path int true "Event ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Attendance}
// @Security ApiKeyAuth
// @Router /teams/{id}/events/{eventId}/attendance [get]
func (ec *EventController) ListEventAttendance(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	if _, ok := ec.auth.RequireView(c, teamID); !ok {
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return
	}
	if e == nil || e.TeamID != teamID {
		responses.NotFound(c, "Event")
		return
	}

	list, err := ec.repo.GetAttendanceForEvent(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list attendance")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", list)
}

// SetEventAttendance godoc
// @Summary Record attendance for an event
// @Description Managers may record attendance for anyone; other members only
// for their own roster entry.
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param eventId path int true "Event ID"
// @Param attendance body SetAttendanceRequest true "Attendance data"
// @Success 200 {object} responses.SuccessResponse{data=Attendance}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/events/{eventId}/attendance [post]
func (ec *EventController) SetEventAttendance(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	e, err := ec.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return
	}
	if e == nil || e.TeamID != teamID {
		responses.NotFound(c, "Event")
		return
	}

	ec.setAttendance(c, teamID, &eventID, nil)
}

// ListMatchAttendance godoc
// @Summary List attendance for a match
// @Tags Matches
// @Produce json
// @Param id path int true "Team ID"
// @Param matchId path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Attendance}
// @Security ApiKeyAuth
// @Router /teams/{id}/matches/{matchId}/attendance [get]
func (ec *EventController) ListMatchAttendance(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}
	if _, ok := ec.auth.RequireView(c, teamID); !ok {
		return
	}

	exists, err := ec.repo.MatchExists(teamID, matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if !exists {
		responses.NotFound(c, "Match")
		return
	}

	list, err := ec.repo.GetAttendanceForMatch(matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list attendance")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", list)
}

// SetMatchAttendance godoc
// @Summary Record attendance for a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param matchId path int true "Match ID"
// @Param attendance body SetAttendanceRequest true "Attendance data"
// @Success 200 {object} responses.SuccessResponse{data=Attendance}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id}/matches/{matchId}/attendance [post]
func (ec *EventController) SetMatchAttendance(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "matchId")
	if !ok {
		return
	}

	exists, err := ec.repo.MatchExists(teamID, matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return
	}
	if !exists {
		responses.NotFound(c, "Match")
		return
	}

	ec.setAttendance(c, teamID, nil, &matchID)
}

func (ec *EventController) setAttendance(c *gin.Context, teamID uint, eventID, matchID *uint) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	member, err := ec.repo.GetTeamMemberByID(req.TeamMemberID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch member")
		return
	}
	if member == nil || member.TeamID != teamID {
		responses.NotFound(c, "Team member")
		return
	}

	canManage, err := ec.auth.CanManage(userID, teamID, middleware.GetRoleFromContext(c))
	if err != nil {
		responses.InternalServerError(c, "Failed to check team access")
		return
	}
	if !canManage {
		// Non-managers may only answer for their own roster entry.
		own, err := ec.repo.GetTeamMemberByUser(teamID, userID)
		if err != nil {
			responses.InternalServerError(c, "Failed to check roster")
			return
		}
		if own == nil || own.ID != req.TeamMemberID {
			responses.Forbidden(c, "You can only record attendance for yourself")
			return
		}
	}

	a := Attendance{
		TeamID:       teamID,
		EventID:      eventID,
		MatchID:      matchID,
		TeamMemberID: req.TeamMemberID,
		Status:       req.Status,
		Note:         req.Note,
	}
	if err := ec.repo.UpsertAttendance(&a); err != nil {
		responses.InternalServerError(c, "Failed to record attendance")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Attendance recorded", a)
}
