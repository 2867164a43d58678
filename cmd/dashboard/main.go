package main

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/just-nibble/repo-dashboard/internal/adapters/api"
	"github.com/just-nibble/repo-dashboard/internal/adapters/db"
	"github.com/just-nibble/repo-dashboard/internal/adapters/http/handlers"
	"github.com/just-nibble/repo-dashboard/internal/adapters/http/routes"
	"github.com/just-nibble/repo-dashboard/internal/adapters/storage"
	"github.com/just-nibble/repo-dashboard/internal/core/service"
	"github.com/just-nibble/repo-dashboard/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Initialize the database
	gormDB, err := storage.InitDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Create the stores
	repoStore := db.NewGormRepositoryStore(gormDB)
	tokenStore := db.NewGormTokenStore(gormDB)
	profileStore := db.NewGormProfileStore(gormDB)

	// Initialize the platform clients
	githubClient := api.NewGitHubClient()
	gitlabClient := api.NewGitLabClient()

	// Create the services
	repoService := service.NewRepositoryService(repoStore, tokenStore, githubClient, gitlabClient, cfg.RepoLimit)
	tokenService := service.NewTokenService(tokenStore)
	profileService := service.NewProfileService(profileStore)

	// Set up HTTP routes
	router := routes.NewRouter(
		handlers.NewRepositoryHandler(repoService),
		handlers.NewTokenHandler(tokenService),
		handlers.NewProfileHandler(profileService),
		handlers.NewOAuthHandler(),
		cfg.SessionSecret,
	)

	log.Info().Str("port", cfg.Port).Msg("server is running")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("could not start server")
	}
}
