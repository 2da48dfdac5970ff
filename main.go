package main

import (
	"log"

	"github.com/sidelines-app/sidelines/config"
	_ "github.com/sidelines-app/sidelines/docs"
	"github.com/sidelines-app/sidelines/internal/friend"
	"github.com/sidelines-app/sidelines/internal/match"
	"github.com/sidelines-app/sidelines/internal/profile"
	"github.com/sidelines-app/sidelines/internal/team"
	"github.com/sidelines-app/sidelines/internal/user"
	"github.com/sidelines-app/sidelines/routes"
)

// @title Sidelines REST API
// @version 1.0
// @description Backend for the Sidelines amateur football app: profiles, friends, teams and matches.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{},
		&profile.Profile{}, &profile.Friendship{},
		&friend.FriendRequest{},
		&team.Team{}, &team.TeamMember{}, &team.TeamInvitation{},
		&match.MatchInvitation{}, &match.Match{}, &match.MatchVote{}, &match.MatchStats{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
