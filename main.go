package main

import (
	"github.com/teamkick/teamkick/config"
	_ "github.com/teamkick/teamkick/docs"
	"github.com/teamkick/teamkick/internal/announcement"
	"github.com/teamkick/teamkick/internal/claim"
	"github.com/teamkick/teamkick/internal/event"
	"github.com/teamkick/teamkick/internal/invitation"
	"github.com/teamkick/teamkick/internal/match"
	"github.com/teamkick/teamkick/internal/stats"
	"github.com/teamkick/teamkick/internal/team"
	"github.com/teamkick/teamkick/internal/user"
	"github.com/teamkick/teamkick/pkg/logger"
	"github.com/teamkick/teamkick/routes"
)

// @title TeamKick REST API
// @version 1.0
// @description Multi-tenant soccer team management backend.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize application")
	}

	cfg := config.GetConfig()

	if cfg.App.Env == "development" {
		logger.Init("debug")
	} else {
		logger.Init("info")
	}

	err := config.DB.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&team.Team{}, &team.TeamMember{}, &team.TeamUser{},
		&claim.MemberClaim{},
		&match.Match{}, &match.MatchLineup{}, &match.TeamLineup{},
		&event.Event{}, &event.Attendance{},
		&stats.PlayerStat{}, &stats.LeagueClassification{},
		&announcement.Announcement{},
		&invitation.Invitation{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("automigrate failed")
	}
	logger.Info().Msg("automigrate successful")

	r := routes.SetupRoutes(cfg, config.DB)

	logger.Info().
		Str("port", cfg.App.Port).
		Str("env", cfg.App.Env).
		Msg("starting server")
	if err := r.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to run server")
	}
}
