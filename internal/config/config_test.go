package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kevinzhu12/monopoly-bench/internal/config"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Players != 2 || cfg.StartingCash != 750 || cfg.MaxTurns != 30 || cfg.TradeLimit != 1 {
		t.Errorf("defaults = %+v", cfg)
	}
	if len(cfg.Agents) != 2 || cfg.Agents[0] != "greedy" || cfg.Agents[1] != "random" {
		t.Errorf("agents = %v", cfg.Agents)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("MONOPOLY_PLAYERS", "3")
	t.Setenv("MONOPOLY_AGENTS", "random,random,passive")
	t.Setenv("MONOPOLY_SEED", "42")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Players != 3 || cfg.Seed != 42 || cfg.LogFormat != "json" || len(cfg.Agents) != 3 {
		t.Errorf("cfg = %+v", cfg)
	}

	t.Setenv("MONOPOLY_MAX_TURNS", "many")
	if _, err := config.Parse(); err == nil {
		t.Error("expected error for non-numeric max turns")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.env")
	if err := os.WriteFile(path, []byte("MONOPOLY_STARTING_CASH=1500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MONOPOLY_STARTING_CASH", "")
	os.Unsetenv("MONOPOLY_STARTING_CASH")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StartingCash != 1500 {
		t.Errorf("starting cash = %d, want 1500", cfg.StartingCash)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file should be ignored: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base, err := config.Parse()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		edit func(c *config.Config)
	}{
		{"one player", func(c *config.Config) { c.Players = 1; c.Agents = c.Agents[:1] }},
		{"no cash", func(c *config.Config) { c.StartingCash = 0 }},
		{"no turns", func(c *config.Config) { c.MaxTurns = 0 }},
		{"no steps", func(c *config.Config) { c.MaxSteps = 0 }},
		{"agent mismatch", func(c *config.Config) { c.Agents = []string{"random"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			c.Agents = append([]string(nil), base.Agents...)
			tt.edit(&c)
			if err := c.Validate(); !errors.Is(err, config.ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg, err := config.Parse()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Seed = 7
	ec := cfg.EngineConfig(nil)
	if ec.StartingCash != 750 || ec.MaxTurns != 30 || ec.TradeLimit != 1 || ec.HistoryLimit != 10 || ec.Seed != 7 {
		t.Errorf("engine config = %+v", ec)
	}
}
