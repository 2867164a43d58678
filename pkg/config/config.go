package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment
// variables.
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	DatabaseDSN   string `envconfig:"DATABASE_DSN" default:"host=localhost user=postgres password=postgres dbname=dashboard port=5432 sslmode=disable"`
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	RepoLimit     int    `envconfig:"REPO_LIMIT" default:"10"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment, after loading a local
// .env file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
