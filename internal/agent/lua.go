package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/kevinzhu12/monopoly-bench/internal/engine"
	"github.com/kevinzhu12/monopoly-bench/internal/protocol"
)

var (
	ErrNoActFunction = errors.New("script does not define act(obs)")
	ErrClosed        = errors.New("lua agent closed")
)

// Lua runs a policy written in Lua. The script defines a global function
//
//	function act(obs) ... end
//
// that returns one of:
//   - nil, to let the greedy policy decide;
//   - an action type string such as "roll";
//   - an action table, {type="build_house", tile_id=15};
//   - a tool call table, {name="build_house", arguments={property_name="Boardwalk"}}.
type Lua struct {
	id string

	mu     sync.Mutex
	L      *lua.LState
	closed bool
}

// NewLua compiles src and checks that it defines act.
func NewLua(playerID, src string) (*Lua, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("lua: %w", err)
	}
	return newLua(playerID, L)
}

// LoadLua runs the script file at path.
func LoadLua(playerID, path string) (*Lua, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("lua %s: %w", path, err)
	}
	return newLua(playerID, L)
}

func newLua(playerID string, L *lua.LState) (*Lua, error) {
	if L.GetGlobal("act").Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoActFunction
	}
	return &Lua{id: playerID, L: L}, nil
}

func (a *Lua) Name() string { return "lua" }

// Close releases the interpreter. Closing twice is a no-op.
func (a *Lua) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.closed {
		a.closed = true
		a.L.Close()
	}
	return nil
}

func (a *Lua) Act(ctx context.Context, obs engine.Observation) (engine.Action, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return engine.Action{}, ErrClosed
	}

	a.L.SetContext(ctx)
	defer a.L.RemoveContext()

	err := a.L.CallByParam(lua.P{
		Fn:      a.L.GetGlobal("act"),
		NRet:    1,
		Protect: true,
	}, observationTable(a.L, obs))
	if err != nil {
		return engine.Action{}, fmt.Errorf("lua act for %s: %w", a.id, err)
	}
	ret := a.L.Get(-1)
	a.L.Pop(1)
	return luaAction(ret, obs)
}

// luaAction converts the script's return value into an engine action.
func luaAction(ret lua.LValue, obs engine.Observation) (engine.Action, error) {
	switch v := ret.(type) {
	case *lua.LNilType:
		return decide(greedyPolicy{}, obs), nil
	case lua.LString:
		return protocol.DecodeAction([]byte(fmt.Sprintf(`{"type":%q}`, string(v))))
	case *lua.LTable:
		fields, ok := fromLua(v).(map[string]interface{})
		if !ok {
			return engine.Action{}, fmt.Errorf("lua: act returned an array, want an action table")
		}
		data, err := json.Marshal(fields)
		if err != nil {
			return engine.Action{}, fmt.Errorf("lua: encode action: %w", err)
		}
		if _, isCall := fields["name"]; isCall {
			var call protocol.ToolCall
			if err := json.Unmarshal(data, &call); err != nil {
				return engine.Action{}, fmt.Errorf("lua: decode tool call: %w", err)
			}
			return call.Action(protocol.ViewTileNames(obs.Tiles))
		}
		return protocol.DecodeAction(data)
	}
	return engine.Action{}, fmt.Errorf("lua: act returned %s", ret.Type())
}

// fromLua converts Lua values to plain Go values. Tables with a sequence part
// become slices, other tables maps; empty tables become nil.
func fromLua(v lua.LValue) interface{} {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if n := v.MaxN(); n > 0 {
			out := make([]interface{}, 0, n)
			for i := 1; i <= n; i++ {
				out = append(out, fromLua(v.RawGetInt(i)))
			}
			return out
		}
		out := map[string]interface{}{}
		v.ForEach(func(k, val lua.LValue) {
			out[k.String()] = fromLua(val)
		})
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}

func observationTable(L *lua.LState, obs engine.Observation) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("phase", lua.LString(obs.Phase))
	t.RawSetString("player_id", lua.LString(obs.PlayerID))
	t.RawSetString("turn", lua.LNumber(obs.Turn))
	t.RawSetString("trades_this_turn", lua.LNumber(obs.TradesThisTurn))
	t.RawSetString("trade_limit", lua.LNumber(obs.TradeLimit))

	legal := L.NewTable()
	for _, a := range obs.Legal {
		legal.Append(lua.LString(a))
	}
	t.RawSetString("legal", legal)
	t.RawSetString("buildable", intTable(L, obs.Buildable))
	t.RawSetString("sellable", intTable(L, obs.Sellable))
	t.RawSetString("mortgageable", intTable(L, obs.Mortgageable))
	t.RawSetString("unmortgageable", intTable(L, obs.Unmortgageable))
	t.RawSetString("pending", intTable(L, obs.Pending))

	if obs.Self != nil {
		t.RawSetString("cash", lua.LNumber(obs.Self.Cash))
		t.RawSetString("position", lua.LNumber(obs.Self.Position))
		t.RawSetString("debt", lua.LNumber(obs.Self.Debt))
		t.RawSetString("properties", intTable(L, obs.Self.Properties))
	}

	// tiles[i+1] describes board index i
	tiles := L.NewTable()
	for _, tile := range obs.Tiles {
		tt := L.NewTable()
		tt.RawSetString("index", lua.LNumber(tile.Index))
		tt.RawSetString("name", lua.LString(tile.Name))
		tt.RawSetString("kind", lua.LString(tile.Kind.String()))
		if tile.Deed != nil {
			tt.RawSetString("cost", lua.LNumber(tile.Deed.Cost))
			tt.RawSetString("owner", lua.LString(tile.Deed.Owner))
			tt.RawSetString("mortgaged", lua.LBool(tile.Deed.Mortgaged))
		}
		if tile.Lot != nil {
			tt.RawSetString("color", lua.LString(tile.Lot.Color))
			tt.RawSetString("houses", lua.LNumber(tile.Lot.Houses))
			tt.RawSetString("house_price", lua.LNumber(tile.Lot.HousePrice))
		}
		tiles.Append(tt)
	}
	t.RawSetString("tiles", tiles)

	players := L.NewTable()
	for _, p := range obs.Players {
		pt := L.NewTable()
		pt.RawSetString("id", lua.LString(p.ID))
		pt.RawSetString("cash", lua.LNumber(p.Cash))
		pt.RawSetString("position", lua.LNumber(p.Position))
		pt.RawSetString("properties", intTable(L, p.Properties))
		players.Append(pt)
	}
	t.RawSetString("players", players)

	if a := obs.Auction; a != nil {
		at := L.NewTable()
		at.RawSetString("tile_id", lua.LNumber(a.Tile))
		at.RawSetString("current_bid", lua.LNumber(a.CurrentBid))
		at.RawSetString("high_bidder", lua.LString(a.HighBidder))
		t.RawSetString("auction", at)
	}
	if tr := obs.Trade; tr != nil {
		tt := L.NewTable()
		tt.RawSetString("from_player", lua.LString(tr.From))
		tt.RawSetString("to_player", lua.LString(tr.To))
		tt.RawSetString("offer_cash", lua.LNumber(tr.Offer.Cash))
		tt.RawSetString("offer_properties", intTable(L, tr.Offer.Properties))
		tt.RawSetString("request_cash", lua.LNumber(tr.Request.Cash))
		tt.RawSetString("request_properties", intTable(L, tr.Request.Properties))
		t.RawSetString("trade", tt)
	}
	return t
}

func intTable(L *lua.LState, xs []int) *lua.LTable {
	t := L.NewTable()
	for _, x := range xs {
		t.Append(lua.LNumber(x))
	}
	return t
}
