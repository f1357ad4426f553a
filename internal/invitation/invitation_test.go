package invitation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamkick/teamkick/internal/authz"
	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/internal/team"
	"github.com/teamkick/teamkick/internal/user"
	"github.com/teamkick/teamkick/pkg/mailer"
)

type inviteTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	team   team.Team
}

func newInviteTestEnv(t *testing.T) *inviteTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &team.Team{}, &team.TeamMember{}, &team.TeamUser{}, &Invitation{},
	))

	tm := team.Team{Name: "FC Test", CreatedByID: 1}
	require.NoError(t, db.Create(&tm).Error)

	// disabled mailer: no SMTP host
	mail := mailer.New("", 587, "", "", "no-reply@test")
	repo := NewInvitationRepository(db)
	controller := NewInvitationController(repo, authz.NewService(db), mail, "http://localhost:3000")

	r := gin.New()
	api := r.Group("")
	api.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			var id uint
			fmt.Sscanf(uid, "%d", &id)
			c.Set(middleware.AuthUserIDKey, id)
		}
	})
	invitations := api.Group("/teams/:id/invitations")
	{
		invitations.GET("", controller.ListInvitations)
		invitations.POST("", controller.CreateInvitation)
		invitations.DELETE("/:invitationId", controller.RevokeInvitation)
	}
	api.POST("/invitations/accept", controller.AcceptInvitation)

	return &inviteTestEnv{db: db, router: r, team: tm}
}

func (e *inviteTestEnv) do(t *testing.T, userID uint, method, path string, body interface{}) *httptest.ResponseRecorder {
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

func (e *inviteTestEnv) invite(t *testing.T, email string) Invitation {
	t.Helper()
	w := e.do(t, 1, http.MethodPost,
		fmt.Sprintf("/teams/%d/invitations", e.team.ID),
		CreateInvitationRequest{Email: email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var inv Invitation
	require.NoError(t, e.db.Where("email = ?", email).Order("id desc").First(&inv).Error)
	return inv
}

func TestCreateInvitation(t *testing.T) {
	env := newInviteTestEnv(t)

	inv := env.invite(t, "player@example.com")
	assert.Equal(t, StatusPending, inv.Status)
	assert.Equal(t, authz.TeamRoleMember, inv.Role)
	assert.NotEmpty(t, inv.Token)
	_, err := uuid.Parse(inv.Token)
	assert.NoError(t, err)
	assert.True(t, inv.ExpiresAt.After(time.Now()))
}

func TestCreateInvitationDuplicatePendingConflicts(t *testing.T) {
	env := newInviteTestEnv(t)

	env.invite(t, "player@example.com")
	w := env.do(t, 1, http.MethodPost,
		fmt.Sprintf("/teams/%d/invitations", env.team.ID),
		CreateInvitationRequest{Email: "player@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateInvitationRequiresManager(t *testing.T) {
	env := newInviteTestEnv(t)

	require.NoError(t, env.db.Create(&team.TeamUser{TeamID: env.team.ID, UserID: 5}).Error)
	w := env.do(t, 5, http.MethodPost,
		fmt.Sprintf("/teams/%d/invitations", env.team.ID),
		CreateInvitationRequest{Email: "player@example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAcceptInvitation(t *testing.T) {
	env := newInviteTestEnv(t)
	inv := env.invite(t, "player@example.com")

	w := env.do(t, 9, http.MethodPost, "/invitations/accept",
		AcceptInvitationRequest{Token: inv.Token})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tu team.TeamUser
	require.NoError(t, env.db.Where("team_id = ? AND user_id = ?", env.team.ID, 9).First(&tu).Error)
	assert.Equal(t, authz.TeamRoleMember, tu.Role)

	var stored Invitation
	require.NoError(t, env.db.First(&stored, inv.ID).Error)
	assert.Equal(t, StatusAccepted, stored.Status)
	require.NotNil(t, stored.AcceptedAt)

	// a second accept of the same token conflicts or 404s depending on state
	w = env.do(t, 10, http.MethodPost, "/invitations/accept",
		AcceptInvitationRequest{Token: inv.Token})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptExpiredInvitation(t *testing.T) {
	env := newInviteTestEnv(t)
	inv := env.invite(t, "player@example.com")

	require.NoError(t, env.db.Model(&Invitation{}).
		Where("id = ?", inv.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	w := env.do(t, 9, http.MethodPost, "/invitations/accept",
		AcceptInvitationRequest{Token: inv.Token})
	assert.Equal(t, http.StatusConflict, w.Code)

	var stored Invitation
	require.NoError(t, env.db.First(&stored, inv.ID).Error)
	assert.Equal(t, StatusExpired, stored.Status)
}

func TestAcceptWhenAlreadyMemberConflicts(t *testing.T) {
	env := newInviteTestEnv(t)
	inv := env.invite(t, "player@example.com")

	require.NoError(t, env.db.Create(&team.TeamUser{TeamID: env.team.ID, UserID: 9}).Error)

	w := env.do(t, 9, http.MethodPost, "/invitations/accept",
		AcceptInvitationRequest{Token: inv.Token})
	assert.Equal(t, http.StatusConflict, w.Code)

	// the invite survives for someone else
	var stored Invitation
	require.NoError(t, env.db.First(&stored, inv.ID).Error)
	assert.Equal(t, StatusPending, stored.Status)
}

func TestRevokeInvitation(t *testing.T) {
	env := newInviteTestEnv(t)
	inv := env.invite(t, "player@example.com")

	w := env.do(t, 1, http.MethodDelete,
		fmt.Sprintf("/teams/%d/invitations/%d", env.team.ID, inv.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// revoked tokens cannot be accepted
	w = env.do(t, 9, http.MethodPost, "/invitations/accept",
		AcceptInvitationRequest{Token: inv.Token})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// revoking twice conflicts
	w = env.do(t, 1, http.MethodDelete,
		fmt.Sprintf("/teams/%d/invitations/%d", env.team.ID, inv.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
