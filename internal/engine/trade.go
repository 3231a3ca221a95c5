package engine

import "fmt"

func (g *Game) applyProposeTrade(p *Player, action Action) (GamePhase, error) {
	if g.TradesThisTurn >= g.config.TradeLimit {
		return PhaseEndManagement, fmt.Errorf("%w (%d)", ErrTradeLimit, g.config.TradeLimit)
	}
	to := g.GetPlayer(action.ToPlayer)
	if to == nil || to.ID == p.ID {
		return PhaseEndManagement, fmt.Errorf("%w: recipient %q", ErrInvalidTrade, action.ToPlayer)
	}
	if action.Offer.Cash < 0 || action.Request.Cash < 0 {
		return PhaseEndManagement, fmt.Errorf("%w: negative cash", ErrInvalidTrade)
	}
	seen := map[int]bool{}
	for _, idx := range append(append([]int(nil), action.Offer.Properties...), action.Request.Properties...) {
		t := g.Tile(idx)
		if t == nil || !t.Ownable() {
			return PhaseEndManagement, fmt.Errorf("%w: tile %d", ErrInvalidTrade, idx)
		}
		if seen[idx] {
			return PhaseEndManagement, fmt.Errorf("%w: tile %d listed twice", ErrInvalidTrade, idx)
		}
		seen[idx] = true
	}

	g.TradesThisTurn++
	g.preTradePhase = g.Phase
	g.Trade = &TradeProposal{
		From:    p.ID,
		To:      to.ID,
		Offer:   copyOffer(action.Offer),
		Request: copyOffer(action.Request),
	}
	g.DecisionPlayer = to.ID
	g.record(Event{
		Type:   EventTradeProposed,
		Player: p.ID,
		Message: fmt.Sprintf("Player %s offered %s $%d + %v for $%d + %v",
			p.ID, to.ID, action.Offer.Cash, action.Offer.Properties, action.Request.Cash, action.Request.Properties),
		Data: map[string]interface{}{"to_player": to.ID},
	})
	return PhaseDecideOnTrade, nil
}

func (g *Game) applyAcceptTrade() (GamePhase, error) {
	tr := g.Trade
	if tr == nil {
		return g.closeTrade(), ErrNoPendingTrade
	}
	// a trade gone stale since the proposal is voided, not rejected
	if err := g.validateTrade(tr); err != nil {
		g.record(Event{
			Type:    EventTradeVoided,
			Player:  tr.To,
			Message: fmt.Sprintf("Trade between %s and %s failed: %v", tr.From, tr.To, err),
			Data:    map[string]interface{}{"reason": err.Error()},
		})
		g.log.WithField("player", tr.To).WithError(err).Info("trade voided")
		return g.closeTrade(), nil
	}

	from, to := g.Players[tr.From], g.Players[tr.To]
	g.transfer(from, to, tr.Offer.Cash)
	g.transfer(to, from, tr.Request.Cash)
	for _, idx := range tr.Offer.Properties {
		g.moveTile(idx, from, to)
	}
	for _, idx := range tr.Request.Properties {
		g.moveTile(idx, to, from)
	}
	g.record(Event{
		Type:    EventTradeAccepted,
		Player:  tr.To,
		Message: fmt.Sprintf("Player %s accepted trade from %s", tr.To, tr.From),
		Data:    map[string]interface{}{"from_player": tr.From},
	})

	g.Trade = nil
	if len(g.MortgageQueue) > 0 {
		g.DecisionPlayer = g.MortgageQueue[0].Receiver
		return PhaseHandleMortgagedTrade, nil
	}
	return g.closeTrade(), nil
}

// moveTile hands a tile over by trade; mortgaged tiles queue for the receiver's decision.
func (g *Game) moveTile(idx int, from, to *Player) {
	t := g.Tiles[idx]
	from.removeProperty(idx)
	to.addProperty(idx)
	t.Deed.Owner = to.ID
	if t.Deed.Mortgaged {
		g.MortgageQueue = append(g.MortgageQueue, MortgagedTransfer{Tile: idx, Receiver: to.ID})
	}
}

func (g *Game) applyRejectTrade() (GamePhase, error) {
	if g.Trade == nil {
		return g.closeTrade(), ErrNoPendingTrade
	}
	g.record(Event{
		Type:    EventTradeRejected,
		Player:  g.Trade.To,
		Message: fmt.Sprintf("Player %s rejected trade from %s", g.Trade.To, g.Trade.From),
	})
	return g.closeTrade(), nil
}

func (g *Game) applyResolveMortgagedTrade(p *Player, action Action) (GamePhase, error) {
	pos := -1
	for i, m := range g.MortgageQueue {
		if m.Tile == action.TileID && m.Receiver == p.ID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return g.Phase, fmt.Errorf("%w: %d", ErrNotQueued, action.TileID)
	}
	if action.Decision != DecisionUnmortgageNow && action.Decision != DecisionPayInterestOnly {
		return g.Phase, fmt.Errorf("%w: %q", ErrInvalidDecision, action.Decision)
	}

	t := g.Tiles[action.TileID]
	msg := ""
	switch action.Decision {
	case DecisionUnmortgageNow:
		if cost := t.UnmortgageCost(); p.Cash >= cost {
			g.payBank(p, cost)
			t.Deed.Mortgaged = false
			msg = fmt.Sprintf("Player %s unmortgaged %s for $%d", p.ID, t.Name, cost)
		} else {
			msg = fmt.Sprintf("Player %s could not afford $%d to unmortgage %s", p.ID, cost, t.Name)
		}
	case DecisionPayInterestOnly:
		if cost := t.InterestCost(); p.Cash >= cost {
			g.payBank(p, cost)
			msg = fmt.Sprintf("Player %s paid $%d interest on %s", p.ID, cost, t.Name)
		} else {
			msg = fmt.Sprintf("Player %s could not afford $%d interest on %s", p.ID, cost, t.Name)
		}
	}
	g.record(Event{
		Type:    EventMortgageResolved,
		Player:  p.ID,
		Message: msg,
		Data:    map[string]interface{}{"tile_id": t.Index, "decision": string(action.Decision), "mortgaged": t.Deed.Mortgaged},
	})

	g.MortgageQueue = append(g.MortgageQueue[:pos], g.MortgageQueue[pos+1:]...)
	if len(g.MortgageQueue) > 0 {
		g.DecisionPlayer = g.MortgageQueue[0].Receiver
		return PhaseHandleMortgagedTrade, nil
	}
	return g.closeTrade(), nil
}

// closeTrade clears trade state and returns the phase active before the proposal.
func (g *Game) closeTrade() GamePhase {
	g.Trade = nil
	g.DecisionPlayer = ""
	next := g.preTradePhase
	if next != PhaseStartManagement && next != PhaseEndManagement {
		next = PhaseEndManagement
	}
	g.preTradePhase = PhaseStartManagement
	return next
}

func copyOffer(o TradeOffer) TradeOffer {
	return TradeOffer{Cash: o.Cash, Properties: append([]int(nil), o.Properties...)}
}
