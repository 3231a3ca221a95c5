package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds match settings read from the environment.
type Config struct {
	Players      int      `env:"MONOPOLY_PLAYERS" envDefault:"2"`
	StartingCash int      `env:"MONOPOLY_STARTING_CASH" envDefault:"750"`
	MaxTurns     int      `env:"MONOPOLY_MAX_TURNS" envDefault:"30"`
	TradeLimit   int      `env:"MONOPOLY_TRADE_LIMIT" envDefault:"1"`
	HistoryLimit int      `env:"MONOPOLY_HISTORY_LIMIT" envDefault:"10"`
	Seed         int64    `env:"MONOPOLY_SEED" envDefault:"0"` // 0 = pick one at startup
	Board        string   `env:"MONOPOLY_BOARD"`               // empty = embedded board
	Agents       []string `env:"MONOPOLY_AGENTS" envDefault:"greedy,random" envSeparator:","`
	MaxSteps     int      `env:"MONOPOLY_MAX_STEPS" envDefault:"20000"`
	Transcript   string   `env:"MONOPOLY_TRANSCRIPT"` // JSON-lines output path, empty = none

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the given .env files (default ".env"), then the environment.
// Missing .env files are ignored; variables already set win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings for a runnable match.
func (c Config) Validate() error {
	switch {
	case c.Players < 2:
		return fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalid, c.Players)
	case c.StartingCash <= 0:
		return fmt.Errorf("%w: starting cash must be positive", ErrInvalid)
	case c.MaxTurns <= 0:
		return fmt.Errorf("%w: max turns must be positive", ErrInvalid)
	case c.TradeLimit < 0:
		return fmt.Errorf("%w: trade limit must not be negative", ErrInvalid)
	case c.MaxSteps <= 0:
		return fmt.Errorf("%w: max steps must be positive", ErrInvalid)
	case len(c.Agents) != c.Players:
		return fmt.Errorf("%w: %d agents for %d players", ErrInvalid, len(c.Agents), c.Players)
	}
	return nil
}

// EngineConfig maps the settings onto the engine's constructor input.
func (c Config) EngineConfig(log logrus.FieldLogger) engine.Config {
	return engine.Config{
		StartingCash: c.StartingCash,
		MaxTurns:     c.MaxTurns,
		TradeLimit:   c.TradeLimit,
		HistoryLimit: c.HistoryLimit,
		Seed:         c.Seed,
		Log:          log,
	}
}
