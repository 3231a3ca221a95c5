package agent

import (
	"sort"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

// policy holds the choices that differ between agents. Rolling, paying
// debts and settling mortgaged trades are shared by all of them.
type policy interface {
	buy(obs engine.Observation, t *engine.Tile) bool
	// bid returns the amount to offer, or false to pass.
	bid(obs engine.Observation, t *engine.Tile) (int, bool)
	acceptTrade(obs engine.Observation) bool
	// manage returns an optional action for the end-management phase.
	manage(obs engine.Observation) (engine.Action, bool)
}

// decide routes an observation to the policy by phase.
func decide(p policy, obs engine.Observation) engine.Action {
	switch obs.Phase {
	case engine.PhaseStartManagement.String():
		return engine.Action{Type: engine.ActionProceed}
	case engine.PhaseEndManagement.String():
		if a, ok := p.manage(obs); ok {
			return a
		}
		return engine.Action{Type: engine.ActionProceed}
	case engine.PhaseRoll.String():
		return engine.Action{Type: engine.ActionRoll}
	case engine.PhaseDecideToBuy.String():
		t := landedTile(obs)
		if t != nil && t.Deed != nil && obs.Self.Cash >= t.Deed.Cost && p.buy(obs, t) {
			return engine.Action{Type: engine.ActionBuy}
		}
		return engine.Action{Type: engine.ActionSkipBuy}
	case engine.PhaseDecideToSell.String():
		return liquidate(obs)
	case engine.PhaseDecideOnTrade.String():
		if obs.Trade != nil && p.acceptTrade(obs) {
			return engine.Action{Type: engine.ActionAcceptTrade}
		}
		return engine.Action{Type: engine.ActionRejectTrade}
	case engine.PhaseHandleMortgagedTrade.String():
		return settleMortgage(obs)
	case engine.PhaseAuction.String():
		if obs.Auction != nil {
			if amount, ok := p.bid(obs, obs.Tile(obs.Auction.Tile)); ok {
				return engine.Action{Type: engine.ActionPlaceBid, BidAmount: amount}
			}
		}
		return engine.Action{Type: engine.ActionPassAuction}
	case engine.PhaseEndTurn.String():
		return engine.Action{Type: engine.ActionEndTurn}
	}
	if len(obs.Legal) > 0 {
		return engine.Action{Type: obs.Legal[0]}
	}
	return engine.Action{Type: engine.ActionProceed}
}

func landedTile(obs engine.Observation) *engine.Tile {
	if obs.Self == nil {
		return nil
	}
	return obs.Tile(obs.Self.Position)
}

// liquidate sells houses before mortgaging, most valuable first.
func liquidate(obs engine.Observation) engine.Action {
	if len(obs.Sellable) > 0 {
		return engine.Action{Type: engine.ActionSellHouse, TileID: mostExpensive(obs, obs.Sellable)}
	}
	if len(obs.Mortgageable) > 0 {
		return engine.Action{Type: engine.ActionMortgageProperty, TileID: mostExpensive(obs, obs.Mortgageable)}
	}
	// nothing left; the engine forces the turn to end
	return engine.Action{Type: engine.ActionMortgageProperty, TileID: -1}
}

// settleMortgage lifts the first pending mortgage when affordable, else pays interest.
func settleMortgage(obs engine.Observation) engine.Action {
	a := engine.Action{Type: engine.ActionResolveMortgagedTrade, Decision: engine.DecisionPayInterestOnly, TileID: -1}
	if len(obs.Pending) == 0 {
		return a
	}
	a.TileID = obs.Pending[0]
	if t := obs.Tile(a.TileID); t != nil && obs.Self != nil && obs.Self.Cash >= t.UnmortgageCost() {
		a.Decision = engine.DecisionUnmortgageNow
	}
	return a
}

func mostExpensive(obs engine.Observation, tiles []int) int {
	sorted := append([]int(nil), tiles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return tileCost(obs, sorted[i]) > tileCost(obs, sorted[j])
	})
	return sorted[0]
}

func cheapest(obs engine.Observation, tiles []int) int {
	sorted := append([]int(nil), tiles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return tileCost(obs, sorted[i]) < tileCost(obs, sorted[j])
	})
	return sorted[0]
}

func tileCost(obs engine.Observation, idx int) int {
	t := obs.Tile(idx)
	if t == nil || t.Deed == nil {
		return 0
	}
	return t.Deed.Cost
}

func housePrice(obs engine.Observation, idx int) int {
	t := obs.Tile(idx)
	if t == nil || t.Lot == nil {
		return 0
	}
	return t.Lot.HousePrice
}

// tradeGain is the value the recipient receives minus what they give, at list cost.
func tradeGain(obs engine.Observation, tr *engine.TradeProposal) int {
	gain := tr.Offer.Cash - tr.Request.Cash
	for _, idx := range tr.Offer.Properties {
		gain += tileCost(obs, idx)
	}
	for _, idx := range tr.Request.Properties {
		gain -= tileCost(obs, idx)
	}
	return gain
}
