package env

import (
	"fmt"
	"time"
	"wager_engine/internal/config"

	envparse "github.com/caarlos0/env/v11"
)

// Tokens are issued by the identity service, this side only verifies them
type jwtConfig struct {
	AccessTokenSecret   string        `env:"ACCESS_TOKEN,required,notEmpty"`
	AccessTokenLifetime time.Duration `env:"ACCESS_TOKEN_DURATION" envDefault:"15m"`
}

func NewJWTConfig() (config.JWTConfig, error) {
	var cfg jwtConfig
	if err := envparse.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("jwt config: %w", err)
	}

	return &cfg, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.AccessTokenSecret)
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.AccessTokenLifetime
}
