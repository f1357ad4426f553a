package team

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
	"github.com/teamkick/teamkick/internal/user"
)

type teamTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTeamTestEnv(t *testing.T) *teamTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &Team{}, &TeamMember{}, &TeamUser{}))

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
	RegisterTeamRoutes(api, db)

	return &teamTestEnv{db: db, router: r}
}

func (e *teamTestEnv) do(t *testing.T, userID uint, role, method, path string, body interface{}) *httptest.ResponseRecorder {
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
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *teamTestEnv) createTeam(t *testing.T, userID uint, name string) Team {
	t.Helper()
	w := e.do(t, userID, "", http.MethodPost, "/teams", CreateTeamRequest{Name: name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Data Team `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestCreateTeamSeedsCreatorAdmin(t *testing.T) {
	env := newTeamTestEnv(t)

	created := env.createTeam(t, 1, "FC Test")
	assert.NotZero(t, created.ID)
	assert.Len(t, created.JoinCode, 6)
	assert.Equal(t, uint(1), created.CreatedByID)

	var m TeamMember
	require.NoError(t, env.db.Where("team_id = ?", created.ID).First(&m).Error)
	assert.Equal(t, authz.TeamRoleAdmin, m.Role)
	require.NotNil(t, m.UserID)
	assert.Equal(t, uint(1), *m.UserID)
	assert.True(t, m.IsVerified)

	var tu TeamUser
	require.NoError(t, env.db.Where("team_id = ? AND user_id = ?", created.ID, 1).First(&tu).Error)
}

func TestGetTeamVisibility(t *testing.T) {
	env := newTeamTestEnv(t)
	created := env.createTeam(t, 1, "FC Test")

	path := fmt.Sprintf("/teams/%d", created.ID)

	assert.Equal(t, http.StatusOK, env.do(t, 1, "", http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, 2, "", http.MethodGet, path, nil).Code)
	// global superuser sees everything
	assert.Equal(t, http.StatusOK, env.do(t, 2, "superuser", http.MethodGet, path, nil).Code)
}

func TestJoinByCode(t *testing.T) {
	env := newTeamTestEnv(t)
	created := env.createTeam(t, 1, "FC Test")

	w := env.do(t, 2, "", http.MethodPost, "/teams/join", JoinTeamRequest{JoinCode: created.JoinCode})
	assert.Equal(t, http.StatusOK, w.Code)

	var tu TeamUser
	require.NoError(t, env.db.Where("team_id = ? AND user_id = ?", created.ID, 2).First(&tu).Error)
	assert.Equal(t, authz.TeamRoleMember, tu.Role)

	// joining twice conflicts
	w = env.do(t, 2, "", http.MethodPost, "/teams/join", JoinTeamRequest{JoinCode: created.JoinCode})
	assert.Equal(t, http.StatusConflict, w.Code)

	// unknown codes are a 404
	w = env.do(t, 3, "", http.MethodPost, "/teams/join", JoinTeamRequest{JoinCode: "XXXXXX"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoinedMemberCannotManage(t *testing.T) {
	env := newTeamTestEnv(t)
	created := env.createTeam(t, 1, "FC Test")

	require.Equal(t, http.StatusOK,
		env.do(t, 2, "", http.MethodPost, "/teams/join", JoinTeamRequest{JoinCode: created.JoinCode}).Code)

	w := env.do(t, 2, "", http.MethodPost,
		fmt.Sprintf("/teams/%d/members", created.ID),
		AddMemberRequest{FullName: "New Player"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddUnclaimedMember(t *testing.T) {
	env := newTeamTestEnv(t)
	created := env.createTeam(t, 1, "FC Test")

	w := env.do(t, 1, "", http.MethodPost,
		fmt.Sprintf("/teams/%d/members", created.ID),
		AddMemberRequest{FullName: "Ghost Player", Position: "GK", JerseyNumber: 13})
	require.Equal(t, http.StatusCreated, w.Code)

	var m TeamMember
	require.NoError(t, env.db.Where("full_name = ?", "Ghost Player").First(&m).Error)
	assert.Nil(t, m.UserID)
	assert.False(t, m.IsVerified)
	assert.True(t, m.Unclaimed())
	assert.Equal(t, authz.TeamRolePlayer, m.Role)
}

func TestAddMemberDirectLink(t *testing.T) {
	env := newTeamTestEnv(t)
	created := env.createTeam(t, 1, "FC Test")

	linkID := uint(7)
	w := env.do(t, 1, "", http.MethodPost,
		fmt.Sprintf("/teams/%d/members", created.ID),
		AddMemberRequest{FullName: "Known Player", UserID: &linkID})
	require.Equal(t, http.StatusCreated, w.Code)

	var m TeamMember
	require.NoError(t, env.db.Where("full_name = ?", "Known Player").First(&m).Error)
	require.NotNil(t, m.UserID)
	assert.True(t, m.IsVerified)

	var tu TeamUser
	require.NoError(t, env.db.Where("team_id = ? AND user_id = ?", created.ID, linkID).First(&tu).Error)

	// adding the same user again conflicts
	w = env.do(t, 1, "", http.MethodPost,
		fmt.Sprintf("/teams/%d/members", created.ID),
		AddMemberRequest{FullName: "Duplicate", UserID: &linkID})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateMemberUnlink(t *testing.T) {
	env := newTeamTestEnv(t)
	created := env.createTeam(t, 1, "FC Test")

	linkID := uint(7)
	require.Equal(t, http.StatusCreated, env.do(t, 1, "", http.MethodPost,
		fmt.Sprintf("/teams/%d/members", created.ID),
		AddMemberRequest{FullName: "Known Player", UserID: &linkID}).Code)

	var m TeamMember
	require.NoError(t, env.db.Where("full_name = ?", "Known Player").First(&m).Error)

	w := env.do(t, 1, "", http.MethodPut,
		fmt.Sprintf("/teams/%d/members/%d", created.ID, m.ID),
		UpdateMemberRequest{Unlink: true})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, env.db.First(&m, m.ID).Error)
	assert.Nil(t, m.UserID)
	assert.False(t, m.IsVerified)
	assert.True(t, m.Unclaimed())
}

func TestRemoveMember(t *testing.T) {
	env := newTeamTestEnv(t)
	created := env.createTeam(t, 1, "FC Test")

	require.Equal(t, http.StatusCreated, env.do(t, 1, "", http.MethodPost,
		fmt.Sprintf("/teams/%d/members", created.ID),
		AddMemberRequest{FullName: "Ghost"}).Code)

	var m TeamMember
	require.NoError(t, env.db.Where("full_name = ?", "Ghost").First(&m).Error)

	w := env.do(t, 1, "", http.MethodDelete,
		fmt.Sprintf("/teams/%d/members/%d", created.ID, m.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	err := env.db.Where("full_name = ?", "Ghost").First(&m).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateMemberWrongTeamIs404(t *testing.T) {
	env := newTeamTestEnv(t)
	a := env.createTeam(t, 1, "Team A")
	b := env.createTeam(t, 2, "Team B")

	var bAdmin TeamMember
	require.NoError(t, env.db.Where("team_id = ?", b.ID).First(&bAdmin).Error)

	name := "Renamed"
	w := env.do(t, 1, "", http.MethodPut,
		fmt.Sprintf("/teams/%d/members/%d", a.ID, bAdmin.ID),
		UpdateMemberRequest{FullName: &name})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTeamCascades(t *testing.T) {
	env := newTeamTestEnv(t)
	created := env.createTeam(t, 1, "FC Test")

	w := env.do(t, 1, "", http.MethodDelete, fmt.Sprintf("/teams/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&TeamMember{}).Where("team_id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&TeamUser{}).Where("team_id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)
}
