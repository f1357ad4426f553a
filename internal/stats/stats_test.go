package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

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

type statsTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	team   team.Team
	member team.TeamMember
}

func newStatsTestEnv(t *testing.T) *statsTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &team.Team{}, &team.TeamMember{}, &team.TeamUser{},
		&PlayerStat{}, &LeagueClassification{},
	))

	tm := team.Team{Name: "FC Test", CreatedByID: 1, Season: "2025/26"}
	require.NoError(t, db.Create(&tm).Error)
	playerID := uint(3)
	member := team.TeamMember{
		TeamID: tm.ID, FullName: "Striker", Role: authz.TeamRolePlayer, UserID: &playerID, IsVerified: true,
	}
	require.NoError(t, db.Create(&member).Error)

	r := gin.New()
	api := r.Group("")
	api.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			var id uint
			fmt.Sscanf(uid, "%d", &id)
			c.Set(middleware.AuthUserIDKey, id)
		}
	})
	RegisterStatsRoutes(api, db)

	return &statsTestEnv{db: db, router: r, team: tm, member: member}
}

func (e *statsTestEnv) do(t *testing.T, userID uint, method, path string, body interface{}) *httptest.ResponseRecorder {
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

func TestCreateStatRequiresManager(t *testing.T) {
	env := newStatsTestEnv(t)

	body := CreateStatRequest{TeamMemberID: env.member.ID, Season: "2025/26", Goals: 2}
	path := fmt.Sprintf("/teams/%d/stats", env.team.ID)

	assert.Equal(t, http.StatusForbidden, env.do(t, 3, http.MethodPost, path, body).Code)
	assert.Equal(t, http.StatusCreated, env.do(t, 1, http.MethodPost, path, body).Code)
}

func TestSeasonTotalsAggregate(t *testing.T) {
	env := newStatsTestEnv(t)

	path := fmt.Sprintf("/teams/%d/stats", env.team.ID)
	for _, s := range []CreateStatRequest{
		{TeamMemberID: env.member.ID, Season: "2025/26", Goals: 2, Assists: 1, MinutesPlayed: 90},
		{TeamMemberID: env.member.ID, Season: "2025/26", Goals: 1, YellowCards: 1, MinutesPlayed: 75},
		{TeamMemberID: env.member.ID, Season: "2024/25", Goals: 9, MinutesPlayed: 90},
	} {
		require.Equal(t, http.StatusCreated, env.do(t, 1, http.MethodPost, path, s).Code)
	}

	w := env.do(t, 1, http.MethodGet, path+"?totals=true&season=2025/26", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []StatTotals `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, env.member.ID, resp.Data[0].TeamMemberID)
	assert.Equal(t, 3, resp.Data[0].Goals)
	assert.Equal(t, 1, resp.Data[0].Assists)
	assert.Equal(t, 1, resp.Data[0].YellowCards)
	assert.Equal(t, 165, resp.Data[0].MinutesPlayed)
	assert.EqualValues(t, 2, resp.Data[0].Matches)
}

func TestStatFromAnotherTeamIs404(t *testing.T) {
	env := newStatsTestEnv(t)

	other := team.Team{Name: "Other", CreatedByID: 1, JoinCode: "OTHER1"}
	require.NoError(t, env.db.Create(&other).Error)
	foreign := PlayerStat{TeamID: other.ID, TeamMemberID: 999, Goals: 1}
	require.NoError(t, env.db.Create(&foreign).Error)

	g := 5
	w := env.do(t, 1, http.MethodPut,
		fmt.Sprintf("/teams/%d/stats/%d", env.team.ID, foreign.ID),
		UpdateStatRequest{Goals: &g})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClassificationOrderedByPosition(t *testing.T) {
	env := newStatsTestEnv(t)

	path := fmt.Sprintf("/teams/%d/classification", env.team.ID)
	rows := []ClassificationRowRequest{
		{RivalName: "Midtable FC", Position: 2, Played: 10, Points: 18},
		{RivalName: "Leaders FC", Position: 1, Played: 10, Points: 25},
		{RivalName: "Bottom FC", Position: 3, Played: 10, Points: 6},
	}
	for _, row := range rows {
		require.Equal(t, http.StatusCreated, env.do(t, 1, http.MethodPost, path, row).Code)
	}

	w := env.do(t, 3, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []LeagueClassification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "Leaders FC", resp.Data[0].RivalName)
	assert.Equal(t, "Bottom FC", resp.Data[2].RivalName)
}
