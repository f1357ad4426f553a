package middleware_test

import (
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

	"github.com/teamkick/teamkick/internal/user"
	"github.com/teamkick/teamkick/pkg/token"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))

	r := gin.New()
	r.GET("/whoami", middleware.RequireAuth(testSecret, db), func(c *gin.Context) {
		uid, err := middleware.GetUserIDFromContext(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"user_id": uid, "role": middleware.GetRoleFromContext(c)})
	})
	return r, db
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthValidToken(t *testing.T) {
	r, db := newAuthRouter(t)

	u := user.User{Username: "alice", Password: "x", FullName: "Alice", Role: user.RoleCoach}
	require.NoError(t, db.Create(&u).Error)

	tok, err := token.GenerateJWT(u.ID, u.Role, testSecret, 60)
	require.NoError(t, err)

	w := get(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"coach"`)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r, _ := newAuthRouter(t)
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	r, _ := newAuthRouter(t)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer").Code)
}

func TestRequireAuthBadSignature(t *testing.T) {
	r, db := newAuthRouter(t)

	u := user.User{Username: "alice", Password: "x", FullName: "Alice"}
	require.NoError(t, db.Create(&u).Error)

	tok, err := token.GenerateJWT(u.ID, "player", "a-different-secret-key-also-32-char", 60)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+tok).Code)
}

func TestRequireAuthDeletedUser(t *testing.T) {
	r, db := newAuthRouter(t)

	u := user.User{Username: "alice", Password: "x", FullName: "Alice"}
	require.NoError(t, db.Create(&u).Error)

	tok, err := token.GenerateJWT(u.ID, "player", testSecret, 60)
	require.NoError(t, err)
	require.NoError(t, db.Delete(&u).Error)

	// a valid token is not enough once the account is gone
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+tok).Code)
}
