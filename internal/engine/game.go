package engine

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kevinzhu12/monopoly-bench/internal/board"
)

var (
	ErrNotYourTurn      = errors.New("not your turn")
	ErrInvalidAction    = errors.New("invalid action")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrWrongPhase       = errors.New("wrong phase for this action")
	ErrGameOver         = errors.New("game is over")
	ErrInvalidTile      = errors.New("invalid tile")
	ErrInsufficientCash = errors.New("not enough cash")
	ErrNotOwner         = errors.New("tile not owned by player")
	ErrAlreadyOwned     = errors.New("tile already owned")
	ErrNotStreet        = errors.New("tile is not a street")
	ErrNoMonopoly       = errors.New("color group not fully owned")
	ErrUnevenBuild      = errors.New("violates even building rule")
	ErrUnevenSell       = errors.New("violates even selling rule")
	ErrMaxHouses        = errors.New("already has hotel")
	ErrNoHouses         = errors.New("no houses to sell")
	ErrAlreadyMortgaged = errors.New("tile already mortgaged")
	ErrNotMortgaged     = errors.New("tile not mortgaged")
	ErrHousesInGroup    = errors.New("color group has houses")
	ErrTradeLimit       = errors.New("trade proposal limit reached this turn")
	ErrInvalidTrade     = errors.New("invalid trade")
	ErrNoPendingTrade   = errors.New("no pending trade")
	ErrNotQueued        = errors.New("tile not awaiting mortgage decision")
	ErrInvalidDecision  = errors.New("invalid mortgage decision")
)

// TradeProposal is the pending trade awaiting the recipient's answer.
type TradeProposal struct {
	From    string     `json:"from_player"`
	To      string     `json:"to_player"`
	Offer   TradeOffer `json:"offer"`
	Request TradeOffer `json:"request"`
}

// MortgagedTransfer is a mortgaged tile received by trade, awaiting its receiver's decision.
type MortgagedTransfer struct {
	Tile     int    `json:"tile_id"`
	Receiver string `json:"receiver"`
}

// Game holds the entire game state.
type Game struct {
	Turn    int                `json:"turn"`
	Order   []string           `json:"order"`   // active players, in turn order
	Current int                `json:"current"` // index into Order
	Phase   GamePhase          `json:"phase"`
	Tiles   []*Tile            `json:"tiles"`
	Players map[string]*Player `json:"players"`

	Trade         *TradeProposal      `json:"trade,omitempty"`
	Auction       *AuctionState       `json:"auction,omitempty"`
	MortgageQueue []MortgagedTransfer `json:"mortgage_queue,omitempty"`

	// DecisionPlayer, when set, acts instead of the current player
	// (trade recipient, mortgaged-tile receiver, auction bidder).
	DecisionPlayer string `json:"decision_player,omitempty"`

	TradesThisTurn int     `json:"trades_this_turn"`
	History        []Event `json:"history"`
	// Recorded counts every event ever appended, including those dropped from History.
	Recorded int `json:"events_recorded"`

	// Bank is the net cash the bank has received from players.
	// Sum of active player cash plus Bank never changes.
	Bank int `json:"bank"`

	preTradePhase GamePhase
	config        Config
	dice          Dice
	log           logrus.FieldLogger
}

// NewGame creates a new game with the given players on the given board.
func NewGame(playerIDs []string, defs []board.Definition, config Config) (*Game, error) {
	if len(playerIDs) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(playerIDs))
	}
	if err := board.Validate(defs); err != nil {
		return nil, err
	}
	config = config.withDefaults()

	g := &Game{
		Players: make(map[string]*Player, len(playerIDs)),
		Phase:   PhaseStartManagement,
		config:  config,
		dice:    config.Dice,
		log:     config.Log,
	}
	for i, d := range defs {
		t, err := newTile(i, d)
		if err != nil {
			return nil, err
		}
		g.Tiles = append(g.Tiles, t)
	}
	for _, id := range playerIDs {
		if id == "" {
			return nil, fmt.Errorf("empty player id")
		}
		if _, dup := g.Players[id]; dup {
			return nil, fmt.Errorf("duplicate player id %q", id)
		}
		g.Players[id] = NewPlayer(id, config.StartingCash)
		g.Order = append(g.Order, id)
	}
	return g, nil
}

// Config returns the settings the game was created with.
func (g *Game) Config() Config { return g.config }

// Apply is the single entry point for player actions. The returned phase is
// always the game's phase after the call; a non-nil error means the action
// was rejected and wraps one of the Err* values.
func (g *Game) Apply(playerID string, action Action) (GamePhase, error) {
	if g.Phase == PhaseGameOver {
		return g.Phase, ErrGameOver
	}
	if !action.Type.Valid() {
		return g.reject(playerID, action, fmt.Errorf("%w: unknown type %q", ErrInvalidAction, action.Type), g.Phase)
	}
	if playerID != g.ActingPlayer() {
		return g.reject(playerID, action, fmt.Errorf("%w: waiting for %s", ErrNotYourTurn, g.ActingPlayer()), g.Phase)
	}
	if !g.Phase.Allows(action.Type) {
		return g.reject(playerID, action, fmt.Errorf("%w: %s during %s", ErrWrongPhase, action.Type, g.Phase), g.Phase)
	}
	p := g.GetPlayer(playerID)
	if p == nil {
		return g.reject(playerID, action, ErrPlayerNotFound, g.Phase)
	}

	var (
		next GamePhase
		err  error
	)
	switch action.Type {
	case ActionProceed:
		next, err = g.applyProceed()
	case ActionRoll:
		next, err = g.applyRoll(p)
	case ActionBuy:
		next, err = g.applyBuy(p)
	case ActionSkipBuy:
		next, err = g.applySkipBuy(p)
	case ActionMortgageProperty:
		next, err = g.applyMortgage(p, action)
	case ActionUnmortgageProperty:
		next, err = g.applyUnmortgage(p, action)
	case ActionSellHouse:
		next, err = g.applySellHouse(p, action)
	case ActionBuildHouse:
		next, err = g.applyBuildHouse(p, action)
	case ActionProposeTrade:
		next, err = g.applyProposeTrade(p, action)
	case ActionAcceptTrade:
		next, err = g.applyAcceptTrade()
	case ActionRejectTrade:
		next, err = g.applyRejectTrade()
	case ActionResolveMortgagedTrade:
		next, err = g.applyResolveMortgagedTrade(p, action)
	case ActionPlaceBid, ActionPassAuction:
		next, err = g.applyAuction(p, action)
	case ActionEndTurn:
		next, err = g.applyEndTurn(p)
	default:
		return g.reject(playerID, action, ErrInvalidAction, g.Phase)
	}
	if err != nil {
		return g.reject(playerID, action, err, next)
	}

	g.Phase = next
	g.log.WithFields(logrus.Fields{
		"player": playerID,
		"action": action.Type,
		"phase":  next.String(),
	}).Debug("action applied")
	return next, nil
}

// reject records a refused action and moves to the fallback phase.
func (g *Game) reject(playerID string, action Action, err error, fallback GamePhase) (GamePhase, error) {
	g.record(Event{
		Type:    EventRejected,
		Player:  playerID,
		Message: fmt.Sprintf("Player %s failed to %s: %v", playerID, action.Type, err),
		Data:    map[string]interface{}{"action": string(action.Type)},
	})
	g.log.WithFields(logrus.Fields{
		"player": playerID,
		"action": action.Type,
		"phase":  g.Phase.String(),
	}).WithError(err).Info("action rejected")
	g.Phase = fallback
	return fallback, err
}

// record appends to the recent-events log, dropping the oldest past the limit.
func (g *Game) record(e Event) {
	g.Recorded++
	g.History = append(g.History, e)
	if over := len(g.History) - g.config.HistoryLimit; over > 0 {
		g.History = append(g.History[:0:0], g.History[over:]...)
	}
}

// GetPlayer finds an active player by ID.
func (g *Game) GetPlayer(id string) *Player {
	return g.Players[id]
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	if len(g.Order) == 0 {
		return nil
	}
	return g.Players[g.Order[g.Current]]
}

// ActingPlayer returns the ID of the player expected to submit the next action.
func (g *Game) ActingPlayer() string {
	if g.DecisionPlayer != "" {
		return g.DecisionPlayer
	}
	if p := g.CurrentPlayer(); p != nil {
		return p.ID
	}
	return ""
}

// LegalActions returns the action types playerID may submit right now.
func (g *Game) LegalActions(playerID string) []ActionType {
	if g.Phase == PhaseGameOver || playerID != g.ActingPlayer() {
		return nil
	}
	out := make([]ActionType, len(legalActions[g.Phase]))
	copy(out, legalActions[g.Phase])
	return out
}

// Tile returns the tile at index, or nil if out of range.
func (g *Game) Tile(index int) *Tile {
	if index < 0 || index >= len(g.Tiles) {
		return nil
	}
	return g.Tiles[index]
}

// EventsSince returns the events recorded after the first n, as far as
// History still holds them.
func (g *Game) EventsSince(n int) []Event {
	missing := g.Recorded - n
	if missing <= 0 {
		return nil
	}
	if missing > len(g.History) {
		missing = len(g.History)
	}
	return append([]Event(nil), g.History[len(g.History)-missing:]...)
}

// IsOver returns true once the match has ended.
func (g *Game) IsOver() bool { return g.Phase == PhaseGameOver }

func (g *Game) payBank(p *Player, amount int) {
	p.Cash -= amount
	g.Bank += amount
}

func (g *Game) fromBank(p *Player, amount int) {
	p.Cash += amount
	g.Bank -= amount
}

func (g *Game) transfer(from, to *Player, amount int) {
	from.Cash -= amount
	to.Cash += amount
}
