package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	GracePeriod    time.Duration `env:"GRACE_PERIOD" envDefault:"2s"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	AllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
