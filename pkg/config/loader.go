package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from environment variables declared with `env` tags.
//
// Example:
//
//	type Config struct {
//	    HTTPPort int    `env:"CATALOG_HTTP_PORT" envDefault:"8000"`
//	    Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
