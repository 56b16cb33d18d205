package env

import (
	"fmt"
	"harvest_slots/internal/config"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

type logConfig struct {
	LevelName string `envconfig:"LOG_LEVEL" default:"info"`
	level     log.Level
}

func NewLogConfig() (config.LogConfig, error) {
	var cfg logConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("log config: %w", err)
	}

	level, err := log.ParseLevel(cfg.LevelName)
	if err != nil {
		return nil, fmt.Errorf("log config: %w", err)
	}
	cfg.level = level

	return &cfg, nil
}

func (c *logConfig) Level() log.Level {
	return c.level
}
