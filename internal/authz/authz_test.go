package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamkick/teamkick/internal/authz"

	"github.com/teamkick/teamkick/internal/team"
	"github.com/teamkick/teamkick/internal/user"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &team.Team{}, &team.TeamMember{}, &team.TeamUser{},
	))
	return db
}

func uintPtr(v uint) *uint { return &v }

func TestTeamRoleResolvesLinkedMemberFirst(t *testing.T) {
	db := setupDB(t)
	svc := authz.NewService(db)

	tm := team.Team{Name: "FC Test", CreatedByID: 1}
	require.NoError(t, db.Create(&tm).Error)
	require.NoError(t, db.Create(&team.TeamMember{
		TeamID: tm.ID, FullName: "Coach Carter", Role: authz.TeamRoleCoach, UserID: uintPtr(2), IsVerified: true,
	}).Error)
	// visibility record carries a weaker role; roster entry must win
	require.NoError(t, db.Create(&team.TeamUser{TeamID: tm.ID, UserID: 2, Role: authz.TeamRoleMember}).Error)

	role, member, err := svc.TeamRole(2, tm.ID)
	require.NoError(t, err)
	assert.True(t, member)
	assert.Equal(t, authz.TeamRoleCoach, role)
}

func TestTeamRoleFallsBackToCreator(t *testing.T) {
	db := setupDB(t)
	svc := authz.NewService(db)

	tm := team.Team{Name: "FC Test", CreatedByID: 5}
	require.NoError(t, db.Create(&tm).Error)

	role, member, err := svc.TeamRole(5, tm.ID)
	require.NoError(t, err)
	assert.True(t, member)
	assert.Equal(t, authz.TeamRoleAdmin, role)
}

func TestTeamRoleFallsBackToVisibilityRecord(t *testing.T) {
	db := setupDB(t)
	svc := authz.NewService(db)

	tm := team.Team{Name: "FC Test", CreatedByID: 1}
	require.NoError(t, db.Create(&tm).Error)
	require.NoError(t, db.Create(&team.TeamUser{TeamID: tm.ID, UserID: 9, Role: authz.TeamRoleMember}).Error)

	role, member, err := svc.TeamRole(9, tm.ID)
	require.NoError(t, err)
	assert.True(t, member)
	assert.Equal(t, authz.TeamRoleMember, role)
}

func TestTeamRoleStranger(t *testing.T) {
	db := setupDB(t)
	svc := authz.NewService(db)

	tm := team.Team{Name: "FC Test", CreatedByID: 1}
	require.NoError(t, db.Create(&tm).Error)

	_, member, err := svc.TeamRole(99, tm.ID)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestCanManage(t *testing.T) {
	db := setupDB(t)
	svc := authz.NewService(db)

	tm := team.Team{Name: "FC Test", CreatedByID: 1}
	require.NoError(t, db.Create(&tm).Error)
	require.NoError(t, db.Create(&team.TeamMember{
		TeamID: tm.ID, FullName: "Coach", Role: authz.TeamRoleCoach, UserID: uintPtr(2), IsVerified: true,
	}).Error)
	require.NoError(t, db.Create(&team.TeamMember{
		TeamID: tm.ID, FullName: "Player", Role: authz.TeamRolePlayer, UserID: uintPtr(3), IsVerified: true,
	}).Error)

	ok, err := svc.CanManage(2, tm.ID, "")
	require.NoError(t, err)
	assert.True(t, ok, "coach manages")

	ok, err = svc.CanManage(3, tm.ID, "")
	require.NoError(t, err)
	assert.False(t, ok, "player does not manage")

	ok, err = svc.CanManage(99, tm.ID, authz.GlobalSuperuser)
	require.NoError(t, err)
	assert.True(t, ok, "superuser bypasses membership")

	ok, err = svc.CanView(3, tm.ID, "")
	require.NoError(t, err)
	assert.True(t, ok, "player still views")

	ok, err = svc.CanView(99, tm.ID, "")
	require.NoError(t, err)
	assert.False(t, ok, "stranger views nothing")
}
