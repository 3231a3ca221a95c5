package agent

import (
	"context"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

// greedyReserve is the cash a greedy agent keeps back when building.
const greedyReserve = 150

// Greedy buys everything it lands on, bids up to list price, builds while it
// can keep a reserve and accepts trades that gain it value at list cost.
type Greedy struct {
	id string
}

func NewGreedy(playerID string) *Greedy { return &Greedy{id: playerID} }

func (g *Greedy) Name() string { return "greedy" }

func (g *Greedy) Act(_ context.Context, obs engine.Observation) (engine.Action, error) {
	return decide(greedyPolicy{}, obs), nil
}

type greedyPolicy struct{}

func (greedyPolicy) buy(engine.Observation, *engine.Tile) bool { return true }

func (greedyPolicy) bid(obs engine.Observation, t *engine.Tile) (int, bool) {
	if t == nil || t.Deed == nil {
		return 0, false
	}
	next := obs.Auction.CurrentBid + 10
	if next > t.Deed.Cost || next > obs.Self.Cash {
		return 0, false
	}
	return next, true
}

func (greedyPolicy) acceptTrade(obs engine.Observation) bool {
	return tradeGain(obs, obs.Trade) > 0
}

func (greedyPolicy) manage(obs engine.Observation) (engine.Action, bool) {
	if obs.Self == nil {
		return engine.Action{}, false
	}
	if len(obs.Buildable) > 0 {
		idx := cheapest(obs, obs.Buildable)
		if obs.Self.Cash-housePrice(obs, idx) >= greedyReserve {
			return engine.Action{Type: engine.ActionBuildHouse, TileID: idx}, true
		}
	}
	for _, idx := range obs.Unmortgageable {
		if t := obs.Tile(idx); t != nil && obs.Self.Cash-t.UnmortgageCost() >= greedyReserve {
			return engine.Action{Type: engine.ActionUnmortgageProperty, TileID: idx}, true
		}
	}
	return engine.Action{}, false
}
