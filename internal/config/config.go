package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	MongoURI      string `envconfig:"MONGODB_URI" required:"true"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"portfolio"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// GitHub activity settings. The token is optional: unauthenticated
	// requests work, just with lower rate limits.
	GitHubUsername    string `envconfig:"GITHUB_USERNAME" required:"true"`
	GitHubToken       string `envconfig:"GITHUB_ACCESS_TOKEN"`
	GitHubCacheTTLSec int    `envconfig:"GITHUB_CACHE_TTL_SEC" default:"60"`
	GitHubTimeoutSec  int    `envconfig:"GITHUB_TIMEOUT_SEC" default:"10"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
