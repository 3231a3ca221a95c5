package engine_test

import (
	"sort"
	"testing"

	"github.com/kevinzhu12/monopoly-bench/internal/board"
	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

// Test board indices.
const (
	tGO       = 0
	tMed      = 1 // brown, $60
	tIncome   = 2 // tax $200
	tBaltic   = 3 // brown, $60
	tReading  = 4
	tParking  = 5
	tOriental = 6 // light blue, $100
	tChance   = 7
	tVermont  = 8 // light blue, $100
	tPenn     = 9
	tElectric = 10
)

func testBoard() []board.Definition {
	return []board.Definition{
		{Name: "GO", Type: board.CategoryOther},
		{Name: "Mediterranean Avenue", Type: board.CategoryStreet, Cost: 60, Rent: 2,
			RentOneHouse: 10, RentTwoHouses: 30, RentThreeHouses: 90, RentFourHouses: 160, RentHotel: 250,
			HouseCost: 50, ColorSet: "brown"},
		{Name: "Income Tax", Type: board.CategoryTax, Rent: 200},
		{Name: "Baltic Avenue", Type: board.CategoryStreet, Cost: 60, Rent: 4,
			RentOneHouse: 20, RentTwoHouses: 60, RentThreeHouses: 180, RentFourHouses: 320, RentHotel: 450,
			HouseCost: 50, ColorSet: "brown"},
		{Name: "Reading Railroad", Type: board.CategoryRailroad, Cost: 200, Rent: 25},
		{Name: "Free Parking", Type: board.CategoryOther},
		{Name: "Oriental Avenue", Type: board.CategoryStreet, Cost: 100, Rent: 6,
			RentOneHouse: 30, RentTwoHouses: 90, RentThreeHouses: 270, RentFourHouses: 400, RentHotel: 550,
			HouseCost: 50, ColorSet: "light_blue"},
		{Name: "Chance", Type: board.CategoryAction},
		{Name: "Vermont Avenue", Type: board.CategoryStreet, Cost: 100, Rent: 6,
			RentOneHouse: 30, RentTwoHouses: 90, RentThreeHouses: 270, RentFourHouses: 400, RentHotel: 550,
			HouseCost: 50, ColorSet: "light_blue"},
		{Name: "Pennsylvania Railroad", Type: board.CategoryRailroad, Cost: 200, Rent: 25},
		{Name: "Electric Company", Type: board.CategoryUtility, Cost: 150, Rent: 10},
	}
}

func newGame(t *testing.T, n int, rolls ...[2]int) *engine.Game {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Dice = engine.NewFixedDice(rolls...)
	return newGameWith(t, n, testBoard(), cfg)
}

func newGameWith(t *testing.T, n int, defs []board.Definition, cfg engine.Config) *engine.Game {
	t.Helper()
	g, err := engine.NewGame(engine.PlayerIDs(n), defs, cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// give hands tiles to a player outside the rules, for setting up positions.
func give(g *engine.Game, id string, tiles ...int) {
	p := g.Players[id]
	for _, idx := range tiles {
		g.Tiles[idx].Deed.Owner = id
		p.Properties = append(p.Properties, idx)
	}
	sort.Ints(p.Properties)
}

func act(typ engine.ActionType) engine.Action {
	return engine.Action{Type: typ}
}

func onTile(typ engine.ActionType, tile int) engine.Action {
	return engine.Action{Type: typ, TileID: tile}
}

func mustApply(t *testing.T, g *engine.Game, id string, a engine.Action) engine.GamePhase {
	t.Helper()
	phase, err := g.Apply(id, a)
	if err != nil {
		t.Fatalf("%s %s: %v", id, a.Type, err)
	}
	return phase
}

func expectPhase(t *testing.T, g *engine.Game, want engine.GamePhase) {
	t.Helper()
	if g.Phase != want {
		t.Fatalf("phase = %s, want %s", g.Phase, want)
	}
}

func lastEvent(g *engine.Game) engine.Event {
	if len(g.History) == 0 {
		return engine.Event{}
	}
	return g.History[len(g.History)-1]
}

// money is the sum of active player cash and the bank's takings.
func money(g *engine.Game) int {
	total := g.Bank
	for _, p := range g.Players {
		total += p.Cash
	}
	return total
}

func checkInvariants(t *testing.T, g *engine.Game) {
	t.Helper()
	for _, tile := range g.Tiles {
		owner := tile.Owner()
		if owner == "" {
			if tile.Houses() > 0 {
				t.Fatalf("unowned %s has %d houses", tile.Name, tile.Houses())
			}
			continue
		}
		p := g.GetPlayer(owner)
		if p == nil {
			t.Fatalf("%s owned by inactive player %s", tile.Name, owner)
		}
		if !p.Owns(tile.Index) {
			t.Fatalf("%s owned by %s but missing from their properties %v", tile.Name, owner, p.Properties)
		}
		if tile.Houses() > 0 && !g.HasMonopoly(owner, tile.Lot.Color) {
			t.Fatalf("%s has %d houses without a monopoly", tile.Name, tile.Houses())
		}
	}
	for _, p := range g.Players {
		if p.Cash < 0 {
			t.Fatalf("player %s has negative cash %d", p.ID, p.Cash)
		}
		for _, idx := range p.Properties {
			if g.Tiles[idx].Owner() != p.ID {
				t.Fatalf("player %s lists %d but owner is %q", p.ID, idx, g.Tiles[idx].Owner())
			}
		}
	}
	groups := map[string][]int{}
	for _, tile := range g.Tiles {
		if tile.IsStreet() {
			groups[tile.Lot.Color] = append(groups[tile.Lot.Color], tile.Houses())
		}
	}
	for color, houses := range groups {
		lo, hi := houses[0], houses[0]
		for _, h := range houses {
			lo, hi = min(lo, h), max(hi, h)
		}
		if hi-lo > 1 {
			t.Fatalf("group %s uneven: %v", color, houses)
		}
	}
}
