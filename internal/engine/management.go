package engine

import "fmt"

func (g *Game) applyBuy(p *Player) (GamePhase, error) {
	t := g.Tiles[p.Position]
	if !t.Ownable() {
		return PhaseEndManagement, fmt.Errorf("%w: %s cannot be bought", ErrInvalidTile, t.Name)
	}
	if t.Deed.Owner != "" {
		return PhaseEndManagement, fmt.Errorf("%w: %s", ErrAlreadyOwned, t.Name)
	}
	if p.Cash < t.Deed.Cost {
		return PhaseEndManagement, fmt.Errorf("%w: need $%d, have $%d", ErrInsufficientCash, t.Deed.Cost, p.Cash)
	}
	g.payBank(p, t.Deed.Cost)
	t.Deed.Owner = p.ID
	p.addProperty(t.Index)
	g.record(Event{
		Type:    EventBought,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s bought %s for $%d", p.ID, t.Name, t.Deed.Cost),
		Data:    map[string]interface{}{"tile_id": t.Index, "cost": t.Deed.Cost},
	})
	return PhaseEndManagement, nil
}

func (g *Game) applyMortgage(p *Player, action Action) (GamePhase, error) {
	t := g.Tile(action.TileID)
	var err error
	switch {
	case t == nil || !t.Ownable():
		err = fmt.Errorf("%w: %d", ErrInvalidTile, action.TileID)
	case t.Deed.Owner != p.ID:
		err = fmt.Errorf("%w: %s", ErrNotOwner, t.Name)
	case t.Deed.Mortgaged:
		err = fmt.Errorf("%w: %s", ErrAlreadyMortgaged, t.Name)
	case t.IsStreet() && g.groupHasHouses(t.Lot.Color):
		err = fmt.Errorf("%w: %s", ErrHousesInGroup, t.Lot.Color)
	}
	if err != nil {
		return g.afterLiquidation(p), err
	}

	value := t.MortgageValue()
	g.fromBank(p, value)
	t.Deed.Mortgaged = true
	g.record(Event{
		Type:    EventMortgaged,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s mortgaged %s for $%d", p.ID, t.Name, value),
		Data:    map[string]interface{}{"tile_id": t.Index, "amount": value},
	})
	return g.afterLiquidation(p), nil
}

func (g *Game) applyUnmortgage(p *Player, action Action) (GamePhase, error) {
	t := g.Tile(action.TileID)
	switch {
	case t == nil || !t.Ownable():
		return PhaseEndManagement, fmt.Errorf("%w: %d", ErrInvalidTile, action.TileID)
	case t.Deed.Owner != p.ID:
		return PhaseEndManagement, fmt.Errorf("%w: %s", ErrNotOwner, t.Name)
	case !t.Deed.Mortgaged:
		return PhaseEndManagement, fmt.Errorf("%w: %s", ErrNotMortgaged, t.Name)
	case p.Cash < t.UnmortgageCost():
		return PhaseEndManagement, fmt.Errorf("%w: need $%d, have $%d", ErrInsufficientCash, t.UnmortgageCost(), p.Cash)
	}

	cost := t.UnmortgageCost()
	g.payBank(p, cost)
	t.Deed.Mortgaged = false
	g.record(Event{
		Type:    EventUnmortgaged,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s unmortgaged %s for $%d", p.ID, t.Name, cost),
		Data:    map[string]interface{}{"tile_id": t.Index, "amount": cost},
	})
	return PhaseEndManagement, nil
}

func (g *Game) applySellHouse(p *Player, action Action) (GamePhase, error) {
	t := g.Tile(action.TileID)
	var err error
	switch {
	case t == nil:
		err = fmt.Errorf("%w: %d", ErrInvalidTile, action.TileID)
	case !t.IsStreet():
		err = fmt.Errorf("%w: %s", ErrNotStreet, t.Name)
	case t.Deed.Owner != p.ID:
		err = fmt.Errorf("%w: %s", ErrNotOwner, t.Name)
	case t.Lot.Houses == 0:
		err = fmt.Errorf("%w: %s", ErrNoHouses, t.Name)
	}
	if err == nil {
		if _, hi := g.groupHouseRange(t.Lot.Color); t.Lot.Houses < hi {
			err = fmt.Errorf("%w: %s has %d, group max is %d", ErrUnevenSell, t.Name, t.Lot.Houses, hi)
		}
	}
	if err != nil {
		return g.afterLiquidation(p), err
	}

	price := t.HouseSalePrice()
	g.fromBank(p, price)
	t.Lot.Houses--
	g.record(Event{
		Type:    EventHouseSold,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s sold a house on %s for $%d (now has %d houses)", p.ID, t.Name, price, t.Lot.Houses),
		Data:    map[string]interface{}{"tile_id": t.Index, "amount": price, "houses": t.Lot.Houses},
	})
	return g.afterLiquidation(p), nil
}

func (g *Game) applyBuildHouse(p *Player, action Action) (GamePhase, error) {
	if err := g.checkBuild(p, action.TileID); err != nil {
		name := fmt.Sprint(action.TileID)
		if t := g.Tile(action.TileID); t != nil {
			name = t.Name
		}
		return PhaseEndManagement, fmt.Errorf("build on %s: %w", name, err)
	}

	t := g.Tiles[action.TileID]
	g.payBank(p, t.Lot.HousePrice)
	t.Lot.Houses++
	g.record(Event{
		Type:    EventHouseBuilt,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s built house on %s (now has %d houses)", p.ID, t.Name, t.Lot.Houses),
		Data:    map[string]interface{}{"tile_id": t.Index, "cost": t.Lot.HousePrice, "houses": t.Lot.Houses},
	})
	return PhaseEndManagement, nil
}
