package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kevinzhu12/monopoly-bench/internal/board"
	"github.com/kevinzhu12/monopoly-bench/internal/engine"
)

var ErrUnknownProperty = errors.New("unknown property name")

// ToolCall is a function-call style action that names tiles instead of
// indexing them, as emitted by language-model agents.
type ToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type toolArgs struct {
	PropertyName      string          `json:"property_name"`
	Decision          string          `json:"decision"`
	BidAmount         int             `json:"bid_amount"`
	ToPlayer          json.RawMessage `json:"to_player"`
	OfferCash         int             `json:"offer_cash"`
	OfferProperties   []string        `json:"offer_properties"`
	RequestCash       int             `json:"request_cash"`
	RequestProperties []string        `json:"request_properties"`
}

var toolAliases = map[string]engine.ActionType{
	"buy_property":      engine.ActionBuy,
	"skip_buy_property": engine.ActionSkipBuy,
}

// TileNames resolves property names to tile indices on a board.
type TileNames map[string]int

func NewTileNames(defs []board.Definition) TileNames {
	names := make(TileNames, len(defs))
	for i, d := range defs {
		names[strings.ToLower(d.Name)] = i
	}
	return names
}

// Lookup is case-insensitive.
func (n TileNames) Lookup(name string) (int, error) {
	idx, ok := n[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("protocol: %w %q", ErrUnknownProperty, name)
	}
	return idx, nil
}

func (n TileNames) lookupAll(names []string) ([]int, error) {
	var out []int
	for _, name := range names {
		idx, err := n.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

// Action converts the call into an engine action.
func (c ToolCall) Action(names TileNames) (engine.Action, error) {
	typ, ok := toolAliases[c.Name]
	if !ok {
		typ = engine.ActionType(c.Name)
	}
	if !typ.Valid() {
		return engine.Action{}, fmt.Errorf("protocol: %w %q", ErrUnknownAction, c.Name)
	}

	var args toolArgs
	if len(c.Arguments) > 0 {
		if err := json.Unmarshal(c.Arguments, &args); err != nil {
			return engine.Action{}, fmt.Errorf("protocol: %s arguments: %w", c.Name, err)
		}
	}

	a := engine.Action{Type: typ}
	var err error
	switch typ {
	case engine.ActionMortgageProperty, engine.ActionUnmortgageProperty,
		engine.ActionSellHouse, engine.ActionBuildHouse:
		a.TileID, err = names.Lookup(args.PropertyName)
	case engine.ActionResolveMortgagedTrade:
		a.TileID, err = names.Lookup(args.PropertyName)
		a.Decision = engine.MortgageDecision(args.Decision)
	case engine.ActionPlaceBid:
		a.BidAmount = args.BidAmount
	case engine.ActionProposeTrade:
		if a.ToPlayer, err = playerRef(args.ToPlayer); err != nil {
			break
		}
		a.Offer.Cash, a.Request.Cash = args.OfferCash, args.RequestCash
		if a.Offer.Properties, err = names.lookupAll(args.OfferProperties); err != nil {
			break
		}
		a.Request.Properties, err = names.lookupAll(args.RequestProperties)
	}
	if err != nil {
		return engine.Action{}, err
	}
	return a, nil
}

// playerRef accepts "p2" or the bare seat number 2.
func playerRef(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, nil
	}
	var seat int
	if err := json.Unmarshal(raw, &seat); err != nil {
		return "", fmt.Errorf("protocol: to_player: %w", err)
	}
	return "p" + strconv.Itoa(seat), nil
}

// ViewTileNames resolves names against the tiles of an observation.
func ViewTileNames(tiles []engine.Tile) TileNames {
	names := make(TileNames, len(tiles))
	for _, t := range tiles {
		names[strings.ToLower(t.Name)] = t.Index
	}
	return names
}
