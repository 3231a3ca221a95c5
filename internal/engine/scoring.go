package engine

import "sort"

// ScoreEntry holds the final standing of one active player.
type ScoreEntry struct {
	PlayerID   string `json:"player_id"`
	Cash       int    `json:"cash"`
	Properties int    `json:"properties"`
	Houses     int    `json:"houses"`
	NetWorth   int    `json:"net_worth"`
}

// NetWorth values cash, deeds at cost (half when mortgaged) and houses at purchase price.
func (g *Game) NetWorth(p *Player) int {
	total := p.Cash
	for _, idx := range p.Properties {
		t := g.Tile(idx)
		if t == nil || t.Deed == nil {
			continue
		}
		if t.Deed.Mortgaged {
			total += t.MortgageValue()
		} else {
			total += t.Deed.Cost
		}
		if t.Lot != nil {
			total += t.Lot.Houses * t.Lot.HousePrice
		}
	}
	return total
}

// Standings ranks active players by cash, then net worth, then turn order.
func (g *Game) Standings() []ScoreEntry {
	entries := make([]ScoreEntry, 0, len(g.Order))
	for _, id := range g.Order {
		p := g.Players[id]
		e := ScoreEntry{
			PlayerID:   p.ID,
			Cash:       p.Cash,
			Properties: len(p.Properties),
			NetWorth:   g.NetWorth(p),
		}
		for _, idx := range p.Properties {
			e.Houses += g.Tiles[idx].Houses()
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Cash != entries[j].Cash {
			return entries[i].Cash > entries[j].Cash
		}
		return entries[i].NetWorth > entries[j].NetWorth
	})
	return entries
}

// Winner returns the leader once the game is over, or "" while it runs.
func (g *Game) Winner() string {
	if !g.IsOver() || len(g.Order) == 0 {
		return ""
	}
	return g.Standings()[0].PlayerID
}
