package env

import (
	"fmt"
	"harvest_slots/internal/config"
	"net"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type httpConfig struct {
	Host     string        `envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port     string        `envconfig:"HTTP_PORT" default:"8080"`
	Shutdown time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	var cfg httpConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("http config: %w", err)
	}

	return &cfg, nil
}

func (c *httpConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *httpConfig) ShutdownTimeout() time.Duration {
	return c.Shutdown
}
