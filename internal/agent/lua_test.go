package agent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kevinzhu12/monopoly-bench/internal/agent"
	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

const buyCheapScript = `
function act(obs)
  if obs.phase == "decide_to_buy" then
    local tile = obs.tiles[obs.position + 1]
    if tile.cost <= 200 then
      return "buy"
    end
    return "skip_buy"
  end
  if obs.phase == "auction_phase" then
    return {type = "place_bid", bid_amount = obs.auction.current_bid + 5}
  end
  if obs.phase == "end_management_phase" and #obs.buildable > 0 then
    return {name = "build_house", arguments = {property_name = obs.tiles[obs.buildable[1] + 1].name}}
  end
  return nil
end
`

func TestLuaAgent(t *testing.T) {
	a, err := agent.NewLua("p1", buyCheapScript)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer a.Close()

	g := landOnReading(t)
	if got := actFor(t, a, g); got.Type != engine.ActionBuy {
		t.Errorf("decide_to_buy: %+v, want buy", got)
	}

	apply(t, g, "p1", engine.ActionSkipBuy)
	if got := actFor(t, a, g); got.Type != engine.ActionPlaceBid || got.BidAmount != 5 {
		t.Errorf("auction: %+v, want place_bid 5", got)
	}
}

func TestLuaToolCallAndFallback(t *testing.T) {
	a, err := agent.NewLua("p1", buyCheapScript)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer a.Close()

	g := newGame(t)
	give(g, "p1", tStJames, tTenn)
	g.Phase = engine.PhaseEndManagement
	got := actFor(t, a, g)
	if got.Type != engine.ActionBuildHouse || got.TileID != tStJames {
		t.Errorf("tool call: %+v, want build_house on St. James Place", got)
	}

	// nil return hands over to the greedy policy
	g.Phase = engine.PhaseStartManagement
	if got := actFor(t, a, g); got.Type != engine.ActionProceed {
		t.Errorf("fallback: %+v, want proceed", got)
	}
}

func TestLuaErrors(t *testing.T) {
	if _, err := agent.NewLua("p1", `x = 1`); !errors.Is(err, agent.ErrNoActFunction) {
		t.Errorf("no act: err = %v, want ErrNoActFunction", err)
	}
	if _, err := agent.NewLua("p1", `function act(obs`); err == nil {
		t.Error("syntax error not reported")
	}

	tests := []struct {
		name string
		src  string
	}{
		{"runtime error", `function act(obs) error("boom") end`},
		{"unknown type", `function act(obs) return "teleport" end`},
		{"wrong return", `function act(obs) return 42 end`},
		{"array", `function act(obs) return {1, 2} end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := agent.NewLua("p1", tt.src)
			if err != nil {
				t.Fatalf("NewLua: %v", err)
			}
			defer a.Close()
			if _, err := a.Act(context.Background(), newGame(t).ObservationFor("p1")); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLuaClose(t *testing.T) {
	a, err := agent.NewLua("p1", buyCheapScript)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := a.Act(context.Background(), newGame(t).ObservationFor("p1")); !errors.Is(err, agent.ErrClosed) {
		t.Errorf("Act after Close: err = %v, want ErrClosed", err)
	}
}
