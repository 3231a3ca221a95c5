package engine

import "fmt"

// incurDebt records a shortfall owed to creditor ("" = bank) and enters debt resolution.
func (g *Game) incurDebt(p *Player, amount int, creditor string) GamePhase {
	p.Debt = amount
	p.Creditor = creditor
	if p.Cash < 0 {
		p.Cash = 0
	}
	to := creditor
	if to == "" {
		to = "the bank"
	}
	g.record(Event{
		Type:    EventDebtIncurred,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s owes $%d to %s", p.ID, amount, to),
		Data:    map[string]interface{}{"debt": amount, "creditor": creditor},
	})
	return g.resolveDebt(p)
}

// resolveDebt pays the debt if cash now covers it. Otherwise the player stays in
// DecideToSell while anything is left to liquidate, and is forced to EndTurn when not.
func (g *Game) resolveDebt(p *Player) GamePhase {
	if !p.InDebt() {
		return PhaseEndManagement
	}
	if p.Cash >= p.Debt {
		g.settleDebt(p)
		return PhaseEndManagement
	}
	if !g.canLiquidate(p) {
		return PhaseEndTurn
	}
	return PhaseDecideToSell
}

func (g *Game) settleDebt(p *Player) {
	amount := p.Debt
	if creditor := g.GetPlayer(p.Creditor); creditor != nil {
		g.transfer(p, creditor, amount)
	} else {
		g.payBank(p, amount)
	}
	g.record(Event{
		Type:    EventDebtSettled,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s paid off $%d debt", p.ID, amount),
		Data:    map[string]interface{}{"amount": amount, "creditor": p.Creditor},
	})
	p.Debt = 0
	p.Creditor = ""
}

// afterLiquidation is the phase following a mortgage or house sale, applied or not.
func (g *Game) afterLiquidation(p *Player) GamePhase {
	if g.Phase == PhaseDecideToSell || p.InDebt() {
		return g.resolveDebt(p)
	}
	return PhaseEndManagement
}
