package env

import (
	"fmt"
	"wager_engine/internal/config"

	envparse "github.com/caarlos0/env/v11"
)

type pgConfig struct {
	DSNValue string `env:"PG_DSN,required,notEmpty"`
}

func NewPGConfig() (config.PGConfig, error) {
	var cfg pgConfig
	if err := envparse.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("pg config: %w", err)
	}

	return &cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.DSNValue
}
