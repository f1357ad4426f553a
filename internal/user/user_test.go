package user

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

	"github.com/teamkick/teamkick/internal/middleware"
)

func newAdminRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

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
	RegisterUserRoutes(api, db)
	return r, db
}

func adminDo(t *testing.T, r *gin.Engine, role, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", "1")
	req.Header.Set("X-Test-Role", role)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminPanelRequiresSuperuser(t *testing.T) {
	r, _ := newAdminRouter(t)

	assert.Equal(t, http.StatusForbidden,
		adminDo(t, r, RoleAdmin, http.MethodGet, "/admin/users", nil).Code)
	assert.Equal(t, http.StatusForbidden,
		adminDo(t, r, RoleCoach, http.MethodGet, "/admin/users", nil).Code)
	assert.Equal(t, http.StatusOK,
		adminDo(t, r, RoleSuperuser, http.MethodGet, "/admin/users", nil).Code)
}

func TestCreateUserDefaultsToPlayer(t *testing.T) {
	r, db := newAdminRouter(t)

	w := adminDo(t, r, RoleSuperuser, http.MethodPost, "/admin/users", CreateUserRequest{
		Username: "newbie", Password: "password123", FullName: "New Person",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var u User
	require.NoError(t, db.Where("username = ?", "newbie").First(&u).Error)
	assert.Equal(t, RolePlayer, u.Role)
	assert.NotEqual(t, "password123", u.Password)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	r, _ := newAdminRouter(t)

	body := CreateUserRequest{Username: "dup", Password: "password123", FullName: "Dup"}
	require.Equal(t, http.StatusCreated,
		adminDo(t, r, RoleSuperuser, http.MethodPost, "/admin/users", body).Code)
	assert.Equal(t, http.StatusConflict,
		adminDo(t, r, RoleSuperuser, http.MethodPost, "/admin/users", body).Code)
}

func TestUpdateUserRole(t *testing.T) {
	r, db := newAdminRouter(t)

	u := User{Username: "carol", Password: "x", FullName: "Carol"}
	require.NoError(t, db.Create(&u).Error)

	role := RoleCoach
	w := adminDo(t, r, RoleSuperuser, http.MethodPut,
		fmt.Sprintf("/admin/users/%d", u.ID), UpdateUserRequest{Role: &role})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&u, u.ID).Error)
	assert.Equal(t, RoleCoach, u.Role)
}

func TestDeleteUser(t *testing.T) {
	r, db := newAdminRouter(t)

	u := User{Username: "gone", Password: "x", FullName: "Gone"}
	require.NoError(t, db.Create(&u).Error)

	w := adminDo(t, r, RoleSuperuser, http.MethodDelete, fmt.Sprintf("/admin/users/%d", u.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	err := db.First(&u, u.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// deleting an unknown id is a 404
	w = adminDo(t, r, RoleSuperuser, http.MethodDelete, "/admin/users/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
