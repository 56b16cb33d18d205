package env

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"harvest_slots/internal/model"
	servModel "harvest_slots/internal/service/harvest/model"

	log "github.com/sirupsen/logrus"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestHarvestConfigDefaults(t *testing.T) {
	cfg, err := NewHarvestConfigFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GridSize() != 6 {
		t.Errorf("expected grid 6, got %d", cfg.GridSize())
	}
	if cfg.AutoSpinMultiplier() != 2 {
		t.Errorf("expected auto spin multiplier 2, got %v", cfg.AutoSpinMultiplier())
	}
	if cfg.MaxMultiplier() != 10 {
		t.Errorf("expected max multiplier 10, got %v", cfg.MaxMultiplier())
	}
	if cfg.IdleEviction() != 30*time.Minute {
		t.Errorf("expected idle eviction 30m, got %v", cfg.IdleEviction())
	}
	if len(cfg.Symbols()) != len(servModel.DefaultSymbols) || len(cfg.Active()) != len(servModel.DefaultActive) {
		t.Errorf("expected default catalog, got %d symbols / %d active", len(cfg.Symbols()), len(cfg.Active()))
	}
}

func TestHarvestConfigFromFile(t *testing.T) {
	path := writeYAML(t, `
harvest:
  grid_size: 8
  max_bet: 250
  max_multiplier: 3
  idle_eviction: 5m
  symbols:
    - id: corn
      value: 20
    - id: pumpkin
      value: 45
  active: [pumpkin]
`)

	cfg, err := NewHarvestConfigFromYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GridSize() != 8 || cfg.MaxBet() != 250 || cfg.MaxMultiplier() != 3 {
		t.Errorf("unexpected values: grid %d max bet %v max multiplier %v", cfg.GridSize(), cfg.MaxBet(), cfg.MaxMultiplier())
	}
	if cfg.IdleEviction() != 5*time.Minute {
		t.Errorf("expected 5m, got %v", cfg.IdleEviction())
	}
	if cfg.StatsWindow() != 500 || cfg.RecorderBuffer() != 256 {
		t.Errorf("unset fields should default, got window %d buffer %d", cfg.StatsWindow(), cfg.RecorderBuffer())
	}
	if len(cfg.Active()) != 1 || cfg.Active()[0] != "pumpkin" {
		t.Errorf("unexpected active set %v", cfg.Active())
	}
}

func TestHarvestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "grid too small", body: "harvest:\n  grid_size: 2\n", wantErr: model.ErrInvalidGridSize},
		{name: "auto spin below one", body: "harvest:\n  auto_spin_multiplier: 0.5\n", wantErr: model.ErrInvalidMultiplier},
		{name: "cap below auto spin", body: "harvest:\n  max_multiplier: 1.5\n", wantErr: model.ErrInvalidMultiplier},
		{name: "unknown active", body: "harvest:\n  active: [dragonfruit]\n", wantErr: model.ErrInvalidCatalog},
		{name: "bad value", body: "harvest:\n  symbols:\n    - id: corn\n      value: -3\n", wantErr: model.ErrInvalidCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHarvestConfigFromYAML(writeYAML(t, tt.body))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := NewHarvestConfigFromYAML(writeYAML(t, "harvest: [")); err == nil {
		t.Error("expected parse error for broken yaml")
	}
}

func TestEnvConfigs(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://harvest@localhost/harvest")
	t.Setenv("ACCESS_TOKEN", "secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "10s")
	t.Setenv("LOG_LEVEL", "debug")

	pg, err := NewPGConfig()
	if err != nil || pg.DSN() != "postgres://harvest@localhost/harvest" {
		t.Errorf("pg config: %v %v", pg, err)
	}

	jwtCfg, err := NewJWTConfig()
	if err != nil || string(jwtCfg.AccessTokenSecretKey()) != "secret" {
		t.Errorf("jwt config: %v %v", jwtCfg, err)
	}

	httpCfg, err := NewHTTPConfig()
	if err != nil || httpCfg.Address() != "0.0.0.0:9090" || httpCfg.ShutdownTimeout() != 10*time.Second {
		t.Errorf("http config: %v %v", httpCfg, err)
	}

	rl, err := NewRateLimitConfig()
	if err != nil || rl.Requests() != 5 || rl.Window() != 10*time.Second {
		t.Errorf("rate limit config: %v %v", rl, err)
	}

	redisCfg, err := NewRedisConfig()
	if err != nil || redisCfg.Addr() != "localhost:6379" || redisCfg.DB() != 0 {
		t.Errorf("redis config: %v %v", redisCfg, err)
	}

	logCfg, err := NewLogConfig()
	if err != nil || logCfg.Level() != log.DebugLevel {
		t.Errorf("log config: %v %v", logCfg, err)
	}
}

func TestEnvConfigsRequired(t *testing.T) {
	t.Setenv("PG_DSN", "")
	t.Setenv("ACCESS_TOKEN", "")
	os.Unsetenv("PG_DSN")
	os.Unsetenv("ACCESS_TOKEN")

	if _, err := NewPGConfig(); err == nil {
		t.Error("expected error without PG_DSN")
	}
	if _, err := NewJWTConfig(); err == nil {
		t.Error("expected error without ACCESS_TOKEN")
	}

	t.Setenv("LOG_LEVEL", "loud")
	if _, err := NewLogConfig(); err == nil {
		t.Error("expected error for unknown log level")
	}
}
