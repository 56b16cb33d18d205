package env

import (
	"errors"
	"fmt"
	"harvest_slots/internal/config"

	"github.com/kelseyhightower/envconfig"
)

// jwtConfig Токены выпускает внешний сервис, здесь нужен только ключ проверки
type jwtConfig struct {
	AccessTokenSecret string `envconfig:"ACCESS_TOKEN" required:"true"`
}

func NewJWTConfig() (config.JWTConfig, error) {
	var cfg jwtConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("jwt config: %w", err)
	}
	if len(cfg.AccessTokenSecret) == 0 {
		return nil, errors.New("access token secret key not found")
	}

	return &cfg, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.AccessTokenSecret)
}
