package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

func (g *Game) applyProceed() (GamePhase, error) {
	switch g.Phase {
	case PhaseStartManagement:
		return PhaseRoll, nil
	case PhaseEndManagement:
		return PhaseEndTurn, nil
	}
	return g.Phase, ErrWrongPhase
}

func (g *Game) applyRoll(p *Player) (GamePhase, error) {
	d1, d2 := g.dice.Roll()
	from := p.Position
	p.Position = (p.Position + d1 + d2) % len(g.Tiles)
	t := g.Tiles[p.Position]

	g.record(Event{
		Type:    EventRolled,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s rolled %d+%d and moved from %d to %s", p.ID, d1, d2, from, t.Name),
		Data:    map[string]interface{}{"dice": []int{d1, d2}, "from": from, "to": p.Position},
	})
	return g.land(p, t), nil
}

// land resolves the tile p just moved onto.
func (g *Game) land(p *Player, t *Tile) GamePhase {
	switch t.Kind {
	case KindStreet, KindRailroad, KindUtility:
		owner := t.Deed.Owner
		switch {
		case owner == "" && t.Deed.Cost > 0:
			return PhaseDecideToBuy
		case owner == "" || owner == p.ID || t.Deed.Mortgaged:
			return PhaseEndManagement
		}
		rent := g.Rent(t)
		creditor := g.GetPlayer(owner)
		paid := min(p.Cash, rent)
		g.transfer(p, creditor, paid)
		g.record(Event{
			Type:    EventRentPaid,
			Player:  p.ID,
			Message: fmt.Sprintf("Player %s paid $%d rent to %s for %s", p.ID, paid, owner, t.Name),
			Data:    map[string]interface{}{"tile_id": t.Index, "rent": rent, "paid": paid, "owner": owner},
		})
		if paid < rent {
			return g.incurDebt(p, rent-paid, owner)
		}
		return PhaseEndManagement
	case KindTax:
		paid := min(p.Cash, t.Tax)
		g.payBank(p, paid)
		g.record(Event{
			Type:    EventTaxPaid,
			Player:  p.ID,
			Message: fmt.Sprintf("Player %s paid $%d %s", p.ID, paid, t.Name),
			Data:    map[string]interface{}{"tile_id": t.Index, "tax": t.Tax, "paid": paid},
		})
		if paid < t.Tax {
			return g.incurDebt(p, t.Tax-paid, "")
		}
		return PhaseEndManagement
	default:
		return PhaseEndManagement
	}
}

func (g *Game) applyEndTurn(p *Player) (GamePhase, error) {
	if p.InDebt() {
		return g.bankrupt(p), nil
	}
	g.record(Event{
		Type:    EventTurnEnd,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s ended turn %d", p.ID, g.Turn),
	})
	g.Current++
	return g.startNextTurn(), nil
}

// startNextTurn wraps the rotation, resets per-turn state and checks the turn limit.
// g.Current must already point at the next player (or past the end).
func (g *Game) startNextTurn() GamePhase {
	if g.Current >= len(g.Order) {
		g.Current = 0
		g.Turn++
	}
	g.TradesThisTurn = 0
	g.DecisionPlayer = ""
	if g.Turn >= g.config.MaxTurns {
		return g.endGame(fmt.Sprintf("turn limit %d reached", g.config.MaxTurns))
	}
	return PhaseStartManagement
}

// bankrupt removes p from the match and hands their assets to the creditor.
func (g *Game) bankrupt(p *Player) GamePhase {
	creditor := g.GetPlayer(p.Creditor)
	if creditor != nil && creditor.ID != p.ID {
		g.transfer(p, creditor, p.Cash)
		for _, idx := range p.Properties {
			g.Tiles[idx].Deed.Owner = creditor.ID
			creditor.addProperty(idx)
		}
	} else {
		g.payBank(p, p.Cash)
		for _, idx := range p.Properties {
			t := g.Tiles[idx]
			t.Deed.Owner = ""
			t.Deed.Mortgaged = false
			if t.Lot != nil {
				t.Lot.Houses = 0
			}
		}
	}

	to := "the bank"
	if creditor != nil {
		to = creditor.ID
	}
	g.record(Event{
		Type:    EventBankrupt,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s went bankrupt owing $%d to %s", p.ID, p.Debt, to),
		Data:    map[string]interface{}{"debt": p.Debt, "creditor": p.Creditor, "properties": p.Properties},
	})
	g.log.WithFields(logrus.Fields{"player": p.ID, "creditor": to, "debt": p.Debt}).Info("player bankrupt")

	p.Cash, p.Debt, p.Creditor, p.Properties = 0, 0, "", nil
	delete(g.Players, p.ID)
	for i, id := range g.Order {
		if id == p.ID {
			g.Order = append(g.Order[:i], g.Order[i+1:]...)
			if i < g.Current {
				g.Current--
			}
			break
		}
	}

	if len(g.Order) <= 1 {
		return g.endGame("one player remaining")
	}
	return g.startNextTurn()
}

func (g *Game) endGame(reason string) GamePhase {
	g.DecisionPlayer = ""
	g.record(Event{
		Type:    EventGameOver,
		Message: fmt.Sprintf("Game over: %s", reason),
		Data:    map[string]interface{}{"turn": g.Turn, "players": len(g.Order)},
	})
	g.log.WithFields(logrus.Fields{"turn": g.Turn, "players": len(g.Order)}).Info("game over: " + reason)
	return PhaseGameOver
}
