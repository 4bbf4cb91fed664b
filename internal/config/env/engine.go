package env

import (
	"fmt"
	"wager_engine/internal/config"

	envparse "github.com/caarlos0/env/v11"
)

type engineConfig struct {
	SeedValue string  `env:"ENGINE_SEED"`
	GamesPath string  `env:"GAMES_CONFIG" envDefault:"config.yaml"`
	Window    int     `env:"STATS_WINDOW" envDefault:"500"`
	RTPTarget float64 `env:"TARGET_RTP" envDefault:"97"`

	RTPTargets map[string]float64 `env:"GAME_TARGET_RTP" envDefault:"mines:97,dice:99,blackjack:98,plinko:96,cases:84"`
}

func NewEngineConfig() (config.EngineConfig, error) {
	var cfg engineConfig
	if err := envparse.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("engine config: STATS_WINDOW must be positive, got %d", cfg.Window)
	}

	return &cfg, nil
}

func (cfg *engineConfig) Seed() string {
	return cfg.SeedValue
}

func (cfg *engineConfig) GamesConfigPath() string {
	return cfg.GamesPath
}

func (cfg *engineConfig) StatsWindow() int {
	return cfg.Window
}

func (cfg *engineConfig) TargetRTP() float64 {
	return cfg.RTPTarget
}

func (cfg *engineConfig) GameTargetRTP() map[string]float64 {
	return cfg.RTPTargets
}
