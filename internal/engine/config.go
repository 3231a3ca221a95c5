package engine

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Config holds configuration for creating a new game.
type Config struct {
	StartingCash int                // cash each player begins with
	MaxTurns     int                // full rotations before the match is cut off
	TradeLimit   int                // trade proposals per player turn
	HistoryLimit int                // recent events kept in Game.History
	Dice         Dice               // nil = seeded from Seed
	Seed         int64              // used only when Dice is nil
	Log          logrus.FieldLogger // nil = discard
}

func DefaultConfig() Config {
	return Config{
		StartingCash: 750,
		MaxTurns:     30,
		TradeLimit:   1,
		HistoryLimit: 10,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.StartingCash < 0 {
		c.StartingCash = 0
	}
	if c.MaxTurns <= 0 {
		c.MaxTurns = d.MaxTurns
	}
	if c.TradeLimit < 0 {
		c.TradeLimit = 0
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = d.HistoryLimit
	}
	if c.Dice == nil {
		c.Dice = NewSeededDice(c.Seed)
	}
	if c.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Log = l
	}
	return c
}
