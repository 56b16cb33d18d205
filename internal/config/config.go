package config

import (
	"harvest_slots/internal/model"
	servModel "harvest_slots/internal/service/harvest/model"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HarvestConfig interface {
	GridSize() int
	MaxBet() float64
	MaxMultiplier() float64
	AutoSpinMultiplier() float64
	StatsWindow() int
	IdleEviction() time.Duration
	RecorderBuffer() int
	Symbols() []servModel.SymbolDef
	Active() []model.Symbol
}

type HTTPConfig interface {
	Address() string
	ShutdownTimeout() time.Duration
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
}

type RateLimitConfig interface {
	Requests() int
	Window() time.Duration
}

type LogConfig interface {
	Level() log.Level
}
