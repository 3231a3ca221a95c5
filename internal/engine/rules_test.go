package engine_test

import (
	"errors"
	"testing"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

func TestRent(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *engine.Game)
		tile  int
		want  int
	}{
		{"base", func(g *engine.Game) { give(g, "p2", tBaltic) }, tBaltic, 4},
		{"monopoly doubles", func(g *engine.Game) { give(g, "p2", tMed, tBaltic) }, tBaltic, 8},
		{"two houses", func(g *engine.Game) {
			give(g, "p2", tMed, tBaltic)
			g.Tiles[tMed].Lot.Houses = 2
			g.Tiles[tBaltic].Lot.Houses = 2
		}, tBaltic, 60},
		{"hotel", func(g *engine.Game) {
			give(g, "p2", tMed, tBaltic)
			g.Tiles[tMed].Lot.Houses = 5
			g.Tiles[tBaltic].Lot.Houses = 5
		}, tMed, 250},
		{"one railroad", func(g *engine.Game) { give(g, "p2", tReading) }, tReading, 25},
		{"two railroads", func(g *engine.Game) { give(g, "p2", tReading, tPenn) }, tPenn, 50},
		{"mortgaged railroad still counts", func(g *engine.Game) {
			give(g, "p2", tReading, tPenn)
			g.Tiles[tPenn].Deed.Mortgaged = true
		}, tReading, 50},
		{"utility", func(g *engine.Game) { give(g, "p2", tElectric) }, tElectric, 10},
		{"non-ownable", func(g *engine.Game) {}, tIncome, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, 2)
			tt.setup(g)
			if got := g.Rent(g.Tiles[tt.tile]); got != tt.want {
				t.Errorf("Rent = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentRent(t *testing.T) {
	g := newGame(t, 2)
	if got := g.CurrentRent(g.Tiles[tBaltic]); got != 0 {
		t.Errorf("unowned current rent = %d, want 0", got)
	}
	give(g, "p2", tBaltic)
	if got := g.CurrentRent(g.Tiles[tBaltic]); got != 4 {
		t.Errorf("owned current rent = %d, want 4", got)
	}
	g.Tiles[tBaltic].Deed.Mortgaged = true
	if got := g.CurrentRent(g.Tiles[tBaltic]); got != 0 {
		t.Errorf("mortgaged current rent = %d, want 0", got)
	}
}

func TestMortgageArithmetic(t *testing.T) {
	g := newGame(t, 2)
	tile := g.Tiles[tMed] // cost 60
	if v := tile.MortgageValue(); v != 30 {
		t.Errorf("MortgageValue = %d, want 30", v)
	}
	if v := tile.UnmortgageCost(); v != 33 {
		t.Errorf("UnmortgageCost = %d, want 33", v)
	}
	if v := tile.InterestCost(); v != 3 {
		t.Errorf("InterestCost = %d, want 3", v)
	}
	if v := tile.HouseSalePrice(); v != 25 {
		t.Errorf("HouseSalePrice = %d, want 25", v)
	}
}

func TestMortgageAndUnmortgage(t *testing.T) {
	g := newGame(t, 2)
	give(g, "p1", tMed)

	mustApply(t, g, "p1", onTile(engine.ActionMortgageProperty, tMed))
	expectPhase(t, g, engine.PhaseEndManagement)
	if c := g.Players["p1"].Cash; c != 780 {
		t.Errorf("cash after mortgage = %d, want 780", c)
	}
	if _, err := g.Apply("p1", onTile(engine.ActionMortgageProperty, tMed)); !errors.Is(err, engine.ErrAlreadyMortgaged) {
		t.Errorf("double mortgage err = %v, want ErrAlreadyMortgaged", err)
	}

	mustApply(t, g, "p1", onTile(engine.ActionUnmortgageProperty, tMed))
	if c := g.Players["p1"].Cash; c != 747 {
		t.Errorf("cash after unmortgage = %d, want 747", c)
	}
	if g.Tiles[tMed].Deed.Mortgaged {
		t.Error("tile still mortgaged")
	}
	if g.Bank != 3 {
		t.Errorf("bank = %d, want 3", g.Bank)
	}
}

func TestMortgageBlockedByHouses(t *testing.T) {
	g := newGame(t, 2)
	give(g, "p1", tMed, tBaltic)
	g.Tiles[tBaltic].Lot.Houses = 1

	if _, err := g.Apply("p1", onTile(engine.ActionMortgageProperty, tMed)); !errors.Is(err, engine.ErrHousesInGroup) {
		t.Fatalf("err = %v, want ErrHousesInGroup", err)
	}
	if got := g.MortgageableTiles(g.Players["p1"]); len(got) != 0 {
		t.Errorf("mortgageable = %v, want none", got)
	}
}

func TestBuildAndSellEvenly(t *testing.T) {
	g := newGame(t, 2)
	give(g, "p1", tMed, tBaltic)
	p := g.Players["p1"]

	mustApply(t, g, "p1", onTile(engine.ActionBuildHouse, tMed))
	if got := g.BuildableTiles(p); len(got) != 1 || got[0] != tBaltic {
		t.Errorf("buildable = %v, want [%d]", got, tBaltic)
	}
	mustApply(t, g, "p1", onTile(engine.ActionBuildHouse, tBaltic))
	mustApply(t, g, "p1", onTile(engine.ActionBuildHouse, tBaltic))
	if p.Cash != 600 {
		t.Errorf("cash = %d, want 600", p.Cash)
	}

	if _, err := g.Apply("p1", onTile(engine.ActionSellHouse, tMed)); !errors.Is(err, engine.ErrUnevenSell) {
		t.Errorf("uneven sell err = %v, want ErrUnevenSell", err)
	}
	if got := g.SellableHouseTiles(p); len(got) != 1 || got[0] != tBaltic {
		t.Errorf("sellable = %v, want [%d]", got, tBaltic)
	}
	mustApply(t, g, "p1", onTile(engine.ActionSellHouse, tBaltic))
	if p.Cash != 625 {
		t.Errorf("cash after sale = %d, want 625", p.Cash)
	}
	checkInvariants(t, g)
}

func TestBuildRules(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *engine.Game)
		tile  int
		want  error
	}{
		{"not a street", func(g *engine.Game) { give(g, "p1", tReading) }, tReading, engine.ErrNotStreet},
		{"no monopoly", func(g *engine.Game) { give(g, "p1", tMed) }, tMed, engine.ErrNoMonopoly},
		{"hotel", func(g *engine.Game) {
			give(g, "p1", tMed, tBaltic)
			g.Tiles[tMed].Lot.Houses = 5
			g.Tiles[tBaltic].Lot.Houses = 5
		}, tMed, engine.ErrMaxHouses},
		{"no cash", func(g *engine.Game) {
			give(g, "p1", tMed, tBaltic)
			g.Players["p1"].Cash = 49
		}, tMed, engine.ErrInsufficientCash},
		{"bad index", func(g *engine.Game) {}, -1, engine.ErrInvalidTile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, 2)
			tt.setup(g)
			if _, err := g.Apply("p1", onTile(engine.ActionBuildHouse, tt.tile)); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHasMonopoly(t *testing.T) {
	g := newGame(t, 2)
	if g.HasMonopoly("", "brown") {
		t.Error("unowned group reported as monopoly")
	}
	give(g, "p1", tMed)
	if g.HasMonopoly("p1", "brown") {
		t.Error("half a group reported as monopoly")
	}
	give(g, "p1", tBaltic)
	if !g.HasMonopoly("p1", "brown") {
		t.Error("full group not reported as monopoly")
	}
	if g.HasMonopoly("p1", "purple") {
		t.Error("missing color reported as monopoly")
	}
}

func TestStandings(t *testing.T) {
	g := newGame(t, 3)
	g.Players["p1"].Cash = 500
	g.Players["p2"].Cash = 900
	g.Players["p3"].Cash = 500
	give(g, "p3", tBaltic)

	got := g.Standings()
	order := []string{got[0].PlayerID, got[1].PlayerID, got[2].PlayerID}
	if order[0] != "p2" || order[1] != "p3" || order[2] != "p1" {
		t.Fatalf("standings = %v, want [p2 p3 p1]", order)
	}
	if got[1].NetWorth != 560 || got[1].Properties != 1 {
		t.Errorf("p3 entry = %+v", got[1])
	}
	if g.Winner() != "" {
		t.Error("winner reported before game over")
	}
}

func TestObservationFor(t *testing.T) {
	g := newGame(t, 2)
	give(g, "p1", tMed, tBaltic, tReading)
	g.Tiles[tReading].Deed.Mortgaged = true

	obs := g.ObservationFor("p1")
	if obs.Phase != "start_management_phase" || !obs.IsMyTurn || !obs.Can(engine.ActionProceed) {
		t.Fatalf("observation header = %s/%v/%v", obs.Phase, obs.IsMyTurn, obs.Legal)
	}
	if obs.Self == nil || obs.Self.Cash != 750 {
		t.Fatalf("self = %+v", obs.Self)
	}
	if len(obs.Buildable) != 2 || len(obs.Mortgageable) != 2 || len(obs.Unmortgageable) != 1 {
		t.Errorf("helpers = build %v mortgage %v unmortgage %v", obs.Buildable, obs.Mortgageable, obs.Unmortgageable)
	}
	if obs.Rents[tBaltic] != 8 || obs.Rents[tReading] != 0 {
		t.Errorf("rents = %v", obs.Rents)
	}

	// observations are copies
	obs.Tile(tBaltic).Deed.Owner = "p2"
	obs.Self.Cash = 0
	if g.Tiles[tBaltic].Owner() != "p1" || g.Players["p1"].Cash != 750 {
		t.Error("mutating the observation changed the game")
	}

	other := g.ObservationFor("p2")
	if other.IsMyTurn || len(other.Legal) != 0 {
		t.Errorf("waiting player observation = %v", other.Legal)
	}
}
