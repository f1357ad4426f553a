package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/internal/team"
	"github.com/teamkick/teamkick/internal/user"
)

type matchTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	team   team.Team
}

// newMatchTestEnv seeds a team whose creator is user 1 and whose
// join-by-code viewer is user 5.
func newMatchTestEnv(t *testing.T) *matchTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &team.Team{}, &team.TeamMember{}, &team.TeamUser{},
		&Match{}, &MatchLineup{}, &TeamLineup{},
	))

	tm := team.Team{Name: "FC Test", CreatedByID: 1}
	require.NoError(t, db.Create(&tm).Error)
	require.NoError(t, db.Create(&team.TeamUser{TeamID: tm.ID, UserID: 5, Role: authz.TeamRoleMember}).Error)

	r := gin.New()
	api := r.Group("")
	api.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			var id uint
			fmt.Sscanf(uid, "%d", &id)
			c.Set(middleware.AuthUserIDKey, id)
			c.Set(middleware.AuthRoleKey, c.GetHeader("X-Test-Role"))
		}
	})
	RegisterMatchRoutes(api, db)

	return &matchTestEnv{db: db, router: r, team: tm}
}

func (e *matchTestEnv) do(t *testing.T, userID uint, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User", fmt.Sprintf("%d", userID))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *matchTestEnv) createMatch(t *testing.T) Match {
	t.Helper()
	w := e.do(t, 1, http.MethodPost,
		fmt.Sprintf("/teams/%d/matches", e.team.ID),
		CreateMatchRequest{Opponent: "Rivals FC", KickoffAt: time.Now().Add(48 * time.Hour)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Data Match `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestCreateMatchDefaults(t *testing.T) {
	env := newMatchTestEnv(t)

	m := env.createMatch(t)
	assert.Equal(t, StatusScheduled, m.Status)
	assert.True(t, m.IsHome)
	assert.Equal(t, "Rivals FC", m.Opponent)
}

func TestCreateMatchRequiresManager(t *testing.T) {
	env := newMatchTestEnv(t)

	w := env.do(t, 5, http.MethodPost,
		fmt.Sprintf("/teams/%d/matches", env.team.ID),
		CreateMatchRequest{Opponent: "Rivals FC", KickoffAt: time.Now()})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateMatchRecordsResult(t *testing.T) {
	env := newMatchTestEnv(t)
	m := env.createMatch(t)

	status := "played"
	gf, ga := 3, 1
	w := env.do(t, 1, http.MethodPut,
		fmt.Sprintf("/teams/%d/matches/%d", env.team.ID, m.ID),
		UpdateMatchRequest{Status: &status, GoalsFor: &gf, GoalsAgainst: &ga})
	require.Equal(t, http.StatusOK, w.Code)

	var stored Match
	require.NoError(t, env.db.First(&stored, m.ID).Error)
	assert.Equal(t, StatusPlayed, stored.Status)
	assert.Equal(t, 3, stored.GoalsFor)
	assert.Equal(t, 1, stored.GoalsAgainst)
}

func TestSaveLineupReplacesPrevious(t *testing.T) {
	env := newMatchTestEnv(t)
	m := env.createMatch(t)

	lineupPath := fmt.Sprintf("/teams/%d/matches/%d/lineup", env.team.ID, m.ID)

	w := env.do(t, 1, http.MethodPost, lineupPath, SaveLineupRequest{
		Formation:   "4-4-2",
		Assignments: map[string]string{"GK": "1", "ST": "9"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, 1, http.MethodPost, lineupPath, SaveLineupRequest{
		Formation:   "4-3-3",
		Assignments: map[string]string{"GK": "13"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// one row per match, latest content wins
	var count int64
	require.NoError(t, env.db.Model(&MatchLineup{}).Where("match_id = ?", m.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var l MatchLineup
	require.NoError(t, env.db.Where("match_id = ?", m.ID).First(&l).Error)
	assert.Equal(t, "4-3-3", l.Formation)
	assert.Equal(t, "13", l.Assignments["GK"])
	assert.NotContains(t, l.Assignments, "ST")
}

func TestGetLineupMissingIs404(t *testing.T) {
	env := newMatchTestEnv(t)
	m := env.createMatch(t)

	w := env.do(t, 1, http.MethodGet,
		fmt.Sprintf("/teams/%d/matches/%d/lineup", env.team.ID, m.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMatchRemovesLineup(t *testing.T) {
	env := newMatchTestEnv(t)
	m := env.createMatch(t)

	require.Equal(t, http.StatusOK, env.do(t, 1, http.MethodPost,
		fmt.Sprintf("/teams/%d/matches/%d/lineup", env.team.ID, m.ID),
		SaveLineupRequest{Formation: "4-4-2", Assignments: map[string]string{"GK": "1"}}).Code)

	w := env.do(t, 1, http.MethodDelete,
		fmt.Sprintf("/teams/%d/matches/%d", env.team.ID, m.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&MatchLineup{}).Where("match_id = ?", m.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMatchFromAnotherTeamIs404(t *testing.T) {
	env := newMatchTestEnv(t)

	other := team.Team{Name: "Other", CreatedByID: 1, JoinCode: "OTHER1"}
	require.NoError(t, env.db.Create(&other).Error)
	foreign := Match{TeamID: other.ID, Opponent: "X", KickoffAt: time.Now(), Status: StatusScheduled}
	require.NoError(t, env.db.Create(&foreign).Error)

	w := env.do(t, 1, http.MethodGet,
		fmt.Sprintf("/teams/%d/matches/%d", env.team.ID, foreign.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTeamLineupTemplates(t *testing.T) {
	env := newMatchTestEnv(t)

	w := env.do(t, 1, http.MethodPost,
		fmt.Sprintf("/teams/%d/lineups", env.team.ID),
		CreateTeamLineupRequest{Name: "Default", Formation: "4-4-2", Assignments: map[string]string{"GK": "1"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, 5, http.MethodGet, fmt.Sprintf("/teams/%d/lineups", env.team.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []TeamLineup `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)

	w = env.do(t, 1, http.MethodDelete,
		fmt.Sprintf("/teams/%d/lineups/%d", env.team.ID, resp.Data[0].ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
