package agent

import (
	"context"
	"math/rand/v2"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

// Random flips a coin for every optional decision. Equal seeds replay equal games.
type Random struct {
	id  string
	rng *rand.Rand
}

func NewRandom(playerID string, seed int64) *Random {
	return &Random{id: playerID, rng: rand.New(rand.NewPCG(uint64(seed), 0x5eed))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Act(_ context.Context, obs engine.Observation) (engine.Action, error) {
	return decide(r, obs), nil
}

func (r *Random) buy(engine.Observation, *engine.Tile) bool {
	return r.rng.IntN(2) == 0
}

func (r *Random) bid(obs engine.Observation, t *engine.Tile) (int, bool) {
	if t == nil || r.rng.IntN(2) == 0 {
		return 0, false
	}
	next := obs.Auction.CurrentBid + 1 + r.rng.IntN(50)
	if next > obs.Self.Cash {
		return 0, false
	}
	return next, true
}

func (r *Random) acceptTrade(engine.Observation) bool {
	return r.rng.IntN(2) == 0
}

func (r *Random) manage(obs engine.Observation) (engine.Action, bool) {
	if obs.Self == nil {
		return engine.Action{}, false
	}
	switch r.rng.IntN(4) {
	case 0:
		if len(obs.Buildable) > 0 {
			return engine.Action{Type: engine.ActionBuildHouse, TileID: obs.Buildable[r.rng.IntN(len(obs.Buildable))]}, true
		}
	case 1:
		if obs.TradesThisTurn < obs.TradeLimit {
			if a, ok := r.proposal(obs); ok {
				return a, true
			}
		}
	}
	return engine.Action{}, false
}

// proposal offers some cash for one tile held by another player.
func (r *Random) proposal(obs engine.Observation) (engine.Action, bool) {
	var targets []engine.Player
	for _, p := range obs.Players {
		if p.ID != obs.PlayerID && len(p.Properties) > 0 {
			targets = append(targets, p)
		}
	}
	if len(targets) == 0 {
		return engine.Action{}, false
	}
	to := targets[r.rng.IntN(len(targets))]
	want := to.Properties[r.rng.IntN(len(to.Properties))]
	offer := min(obs.Self.Cash, tileCost(obs, want)/2+r.rng.IntN(tileCost(obs, want)+1))
	return engine.Action{
		Type:     engine.ActionProposeTrade,
		ToPlayer: to.ID,
		Offer:    engine.TradeOffer{Cash: offer},
		Request:  engine.TradeOffer{Properties: []int{want}},
	}, true
}
