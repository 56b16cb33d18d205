package env

import (
	"errors"
	"fmt"
	"harvest_slots/internal/config"
	"harvest_slots/internal/model"
	servModel "harvest_slots/internal/service/harvest/model"
	"io/fs"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultGridSize       = 6
	defaultMaxBet         = 1000
	defaultMaxMultiplier  = 10
	defaultAutoSpinMult   = 2
	defaultStatsWindow    = 500
	defaultIdleEviction   = 30 * time.Minute
	defaultRecorderBuffer = 256
)

type symbolYAML struct {
	ID    string `yaml:"id"`
	Value int    `yaml:"value"`
}

type harvestYAML struct {
	GridSize           int           `yaml:"grid_size"`
	MaxBet             float64       `yaml:"max_bet"`
	MaxMultiplier      float64       `yaml:"max_multiplier"`
	AutoSpinMultiplier float64       `yaml:"auto_spin_multiplier"`
	StatsWindow        int           `yaml:"stats_window"`
	IdleEviction       time.Duration `yaml:"idle_eviction"`
	RecorderBuffer     int           `yaml:"recorder_buffer"`
	Symbols            []symbolYAML  `yaml:"symbols"`
	Active             []string      `yaml:"active"`
}

type fileYAML struct {
	Harvest harvestYAML `yaml:"harvest"`
}

type harvestConfig struct {
	gridSize       int
	maxBet         float64
	maxMultiplier  float64
	autoSpinMult   float64
	statsWindow    int
	idleEviction   time.Duration
	recorderBuffer int
	symbols        []servModel.SymbolDef
	active         []model.Symbol
}

// NewHarvestConfigFromYAML читает настройки игры из YAML.
// Отсутствующий файл или поле означают значение по умолчанию
func NewHarvestConfigFromYAML(path string) (config.HarvestConfig, error) {
	var raw fileYAML

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.WithField("path", path).Info("harvest config not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("read harvest config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse harvest config: %w", err)
		}
	}

	return newHarvestConfig(raw.Harvest)
}

func newHarvestConfig(h harvestYAML) (*harvestConfig, error) {
	cfg := &harvestConfig{
		gridSize:       orInt(h.GridSize, defaultGridSize),
		maxBet:         orFloat(h.MaxBet, defaultMaxBet),
		maxMultiplier:  orFloat(h.MaxMultiplier, defaultMaxMultiplier),
		autoSpinMult:   orFloat(h.AutoSpinMultiplier, defaultAutoSpinMult),
		statsWindow:    orInt(h.StatsWindow, defaultStatsWindow),
		idleEviction:   h.IdleEviction,
		recorderBuffer: orInt(h.RecorderBuffer, defaultRecorderBuffer),
	}
	if cfg.idleEviction == 0 {
		cfg.idleEviction = defaultIdleEviction
	}

	if cfg.gridSize < 3 {
		return nil, fmt.Errorf("%w: got %d", model.ErrInvalidGridSize, cfg.gridSize)
	}
	if cfg.maxBet < 0 {
		return nil, fmt.Errorf("max_bet must be positive, got %v", cfg.maxBet)
	}
	if cfg.autoSpinMult < 1 {
		return nil, fmt.Errorf("%w: auto_spin_multiplier %v", model.ErrInvalidMultiplier, cfg.autoSpinMult)
	}
	if cfg.maxMultiplier < cfg.autoSpinMult {
		return nil, fmt.Errorf("%w: max_multiplier %v is below auto_spin_multiplier %v",
			model.ErrInvalidMultiplier, cfg.maxMultiplier, cfg.autoSpinMult)
	}
	if cfg.statsWindow < 0 || cfg.recorderBuffer < 0 || cfg.idleEviction < 0 {
		return nil, errors.New("stats_window, recorder_buffer and idle_eviction must not be negative")
	}

	if len(h.Symbols) == 0 {
		cfg.symbols = servModel.DefaultSymbols
		if len(h.Active) == 0 {
			cfg.active = servModel.DefaultActive
		}
	} else {
		cfg.symbols = make([]servModel.SymbolDef, len(h.Symbols))
		for i, s := range h.Symbols {
			cfg.symbols[i] = servModel.SymbolDef{ID: model.Symbol(s.ID), Value: s.Value}
		}
	}
	for _, a := range h.Active {
		cfg.active = append(cfg.active, model.Symbol(a))
	}

	// Каталог проверяем сразу, чтобы ошибка всплыла на старте
	if _, err := servModel.NewCatalog(cfg.symbols, cfg.active); err != nil {
		return nil, err
	}

	return cfg, nil
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func (c *harvestConfig) GridSize() int                  { return c.gridSize }
func (c *harvestConfig) MaxBet() float64                { return c.maxBet }
func (c *harvestConfig) MaxMultiplier() float64         { return c.maxMultiplier }
func (c *harvestConfig) AutoSpinMultiplier() float64    { return c.autoSpinMult }
func (c *harvestConfig) StatsWindow() int               { return c.statsWindow }
func (c *harvestConfig) IdleEviction() time.Duration    { return c.idleEviction }
func (c *harvestConfig) RecorderBuffer() int            { return c.recorderBuffer }
func (c *harvestConfig) Symbols() []servModel.SymbolDef { return c.symbols }
func (c *harvestConfig) Active() []model.Symbol         { return c.active }
