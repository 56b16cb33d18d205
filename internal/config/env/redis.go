package env

import (
	"fmt"
	"harvest_slots/internal/config"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type redisConfig struct {
	Address  string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Pass     string `envconfig:"REDIS_PASSWORD"`
	Database int    `envconfig:"REDIS_DB" default:"0"`
}

func NewRedisConfig() (config.RedisConfig, error) {
	var cfg redisConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}

	return &cfg, nil
}

func (c *redisConfig) Addr() string     { return c.Address }
func (c *redisConfig) Password() string { return c.Pass }
func (c *redisConfig) DB() int          { return c.Database }

type rateLimitConfig struct {
	MaxRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"60"`
	Period      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

func NewRateLimitConfig() (config.RateLimitConfig, error) {
	var cfg rateLimitConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("rate limit config: %w", err)
	}
	if cfg.MaxRequests <= 0 || cfg.Period <= 0 {
		return nil, fmt.Errorf("rate limit config: requests and window must be positive")
	}

	return &cfg, nil
}

func (c *rateLimitConfig) Requests() int         { return c.MaxRequests }
func (c *rateLimitConfig) Window() time.Duration { return c.Period }
