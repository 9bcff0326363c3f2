package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath        string        `env:"DB_PATH" envDefault:"data/centum.db"`
	LogLevel      slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	Secret        string        `env:"SECRET,required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	CountdownTick time.Duration `env:"COUNTDOWN_TICK" envDefault:"1s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
