package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for E2E tests
type Config struct {
	AccessToken string        `envconfig:"ACCESS_TOKEN"`
	Query       string        `envconfig:"E2E_QUERY" default:"quarterly report"`
	Filter      string        `envconfig:"E2E_FILTER"`
	Timeout     time.Duration `envconfig:"E2E_TIMEOUT" default:"60s"`
}

// LoadConfig loads E2E test configuration from COPILOT_SEARCH_* environment variables
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("COPILOT_SEARCH", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
