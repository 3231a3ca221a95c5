package agent

import (
	"context"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

// Passive never buys, bids or trades. It only does what the rules force.
type Passive struct {
	id string
}

func NewPassive(playerID string) *Passive { return &Passive{id: playerID} }

func (p *Passive) Name() string { return "passive" }

func (p *Passive) Act(_ context.Context, obs engine.Observation) (engine.Action, error) {
	return decide(passivePolicy{}, obs), nil
}

type passivePolicy struct{}

func (passivePolicy) buy(engine.Observation, *engine.Tile) bool { return false }
func (passivePolicy) bid(engine.Observation, *engine.Tile) (int, bool) { return 0, false }
func (passivePolicy) acceptTrade(engine.Observation) bool { return false }
func (passivePolicy) manage(engine.Observation) (engine.Action, bool) { return engine.Action{}, false }
