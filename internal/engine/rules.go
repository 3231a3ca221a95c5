package engine

// railroadRent is keyed by the number of railroads the owner holds.
var railroadRent = [...]int{0, 25, 50, 100, 200}

// ColorGroup returns every street tile in the given color group.
func (g *Game) ColorGroup(color string) []*Tile {
	var group []*Tile
	for _, t := range g.Tiles {
		if t.IsStreet() && t.Lot.Color == color {
			group = append(group, t)
		}
	}
	return group
}

// HasMonopoly returns true if playerID owns every street in the color group.
func (g *Game) HasMonopoly(playerID, color string) bool {
	if playerID == "" {
		return false
	}
	group := g.ColorGroup(color)
	if len(group) == 0 {
		return false
	}
	for _, t := range group {
		if t.Deed.Owner != playerID {
			return false
		}
	}
	return true
}

// groupHouseRange returns the min and max house count in a color group.
func (g *Game) groupHouseRange(color string) (lo, hi int) {
	group := g.ColorGroup(color)
	if len(group) == 0 {
		return 0, 0
	}
	lo, hi = group[0].Lot.Houses, group[0].Lot.Houses
	for _, t := range group[1:] {
		if t.Lot.Houses < lo {
			lo = t.Lot.Houses
		}
		if t.Lot.Houses > hi {
			hi = t.Lot.Houses
		}
	}
	return lo, hi
}

func (g *Game) groupHasHouses(color string) bool {
	_, hi := g.groupHouseRange(color)
	return hi > 0
}

// RailroadsOwned counts railroads held by playerID, mortgaged or not.
func (g *Game) RailroadsOwned(playerID string) int {
	n := 0
	for _, t := range g.Tiles {
		if t.Kind == KindRailroad && playerID != "" && t.Deed.Owner == playerID {
			n++
		}
	}
	return n
}

// Rent computes what a visitor owes on landing. It has no side effects and
// ignores ownership and mortgage status; see CurrentRent for that.
func (g *Game) Rent(t *Tile) int {
	if t == nil || t.Deed == nil {
		return 0
	}
	switch t.Kind {
	case KindStreet:
		switch houses := t.Lot.Houses; {
		case houses > 0:
			if houses > MaxHouses {
				houses = MaxHouses
			}
			return t.Lot.HouseRents[houses-1]
		case g.HasMonopoly(t.Deed.Owner, t.Lot.Color):
			return t.Deed.Rent * 2
		}
		return t.Deed.Rent
	case KindRailroad:
		n := g.RailroadsOwned(t.Deed.Owner)
		if n >= len(railroadRent) {
			n = len(railroadRent) - 1
		}
		return railroadRent[n]
	default:
		return t.Deed.Rent
	}
}

// CurrentRent is the rent a tile would charge right now: 0 when unowned or mortgaged.
func (g *Game) CurrentRent(t *Tile) int {
	if t == nil || t.Deed == nil || t.Deed.Owner == "" || t.Deed.Mortgaged {
		return 0
	}
	return g.Rent(t)
}

// MortgageableTiles lists tiles p may mortgage: owned, unmortgaged, and for
// streets only when no street in the color group carries houses.
func (g *Game) MortgageableTiles(p *Player) []int {
	var out []int
	for _, idx := range p.Properties {
		t := g.Tile(idx)
		if t == nil || t.Deed == nil || t.Deed.Mortgaged {
			continue
		}
		if t.IsStreet() && g.groupHasHouses(t.Lot.Color) {
			continue
		}
		out = append(out, idx)
	}
	return out
}

// UnmortgageableTiles lists mortgaged tiles p can afford to lift.
func (g *Game) UnmortgageableTiles(p *Player) []int {
	var out []int
	for _, idx := range p.Properties {
		t := g.Tile(idx)
		if t != nil && t.Deed != nil && t.Deed.Mortgaged && p.Cash >= t.UnmortgageCost() {
			out = append(out, idx)
		}
	}
	return out
}

// SellableHouseTiles lists streets where p may sell a house under the even selling rule.
func (g *Game) SellableHouseTiles(p *Player) []int {
	var out []int
	for _, idx := range p.Properties {
		t := g.Tile(idx)
		if t == nil || !t.IsStreet() || t.Lot.Houses == 0 {
			continue
		}
		if _, hi := g.groupHouseRange(t.Lot.Color); t.Lot.Houses == hi {
			out = append(out, idx)
		}
	}
	return out
}

// BuildableTiles lists streets where p may build the next house right now.
func (g *Game) BuildableTiles(p *Player) []int {
	var out []int
	for _, idx := range p.Properties {
		if g.checkBuild(p, idx) == nil {
			out = append(out, idx)
		}
	}
	return out
}

// checkBuild validates a house purchase without changing state.
func (g *Game) checkBuild(p *Player, idx int) error {
	t := g.Tile(idx)
	if t == nil {
		return ErrInvalidTile
	}
	if !t.IsStreet() {
		return ErrNotStreet
	}
	if t.Deed.Owner != p.ID {
		return ErrNotOwner
	}
	if !g.HasMonopoly(p.ID, t.Lot.Color) {
		return ErrNoMonopoly
	}
	if lo, _ := g.groupHouseRange(t.Lot.Color); t.Lot.Houses > lo {
		return ErrUnevenBuild
	}
	if t.Lot.Houses >= MaxHouses {
		return ErrMaxHouses
	}
	if p.Cash < t.Lot.HousePrice {
		return ErrInsufficientCash
	}
	return nil
}

// canLiquidate reports whether p still has anything to mortgage or sell.
func (g *Game) canLiquidate(p *Player) bool {
	return len(g.MortgageableTiles(p)) > 0 || len(g.SellableHouseTiles(p)) > 0
}

// validateTrade checks a trade against the state at acceptance time.
func (g *Game) validateTrade(tr *TradeProposal) error {
	from, to := g.GetPlayer(tr.From), g.GetPlayer(tr.To)
	if from == nil || to == nil {
		return ErrPlayerNotFound
	}
	if from.Cash < tr.Offer.Cash {
		return ErrInsufficientCash
	}
	for _, idx := range tr.Offer.Properties {
		if !from.Owns(idx) {
			return ErrNotOwner
		}
	}
	if to.Cash < tr.Request.Cash {
		return ErrInsufficientCash
	}
	for _, idx := range tr.Request.Properties {
		if !to.Owns(idx) {
			return ErrNotOwner
		}
	}
	for _, idx := range append(append([]int(nil), tr.Offer.Properties...), tr.Request.Properties...) {
		if t := g.Tile(idx); t.IsStreet() && g.groupHasHouses(t.Lot.Color) {
			return ErrHousesInGroup
		}
	}
	return nil
}
