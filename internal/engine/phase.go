package engine

// GamePhase represents the current phase of the turn state machine.
type GamePhase int

const (
	PhaseStartManagement      GamePhase = iota // before the roll: trade, build, mortgage
	PhaseRoll                                  // waiting for the dice
	PhaseDecideToBuy                           // landed on an unowned, buyable tile
	PhaseDecideToSell                          // in debt, must raise cash
	PhaseEndManagement                         // after landing: trade, build, mortgage
	PhaseDecideOnTrade                         // trade recipient must answer
	PhaseHandleMortgagedTrade                  // receiver settles mortgaged tiles from a trade
	PhaseAuction                               // bidding on a skipped tile
	PhaseEndTurn                               // only end_turn is legal
	PhaseGameOver                              // terminal
)

var phaseNames = map[GamePhase]string{
	PhaseStartManagement:      "start_management_phase",
	PhaseRoll:                 "roll_phase",
	PhaseDecideToBuy:          "decide_to_buy",
	PhaseDecideToSell:         "decide_to_sell",
	PhaseEndManagement:        "end_management_phase",
	PhaseDecideOnTrade:        "decide_on_trade",
	PhaseHandleMortgagedTrade: "handle_mortgaged_trade",
	PhaseAuction:              "auction_phase",
	PhaseEndTurn:              "end_turn",
	PhaseGameOver:             "game_over",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes the phase by name so observations carry the phase string.
func (p GamePhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

var managementActions = []ActionType{
	ActionProceed,
	ActionMortgageProperty,
	ActionUnmortgageProperty,
	ActionSellHouse,
	ActionBuildHouse,
	ActionProposeTrade,
}

// legalActions lists the action types accepted in each phase.
var legalActions = map[GamePhase][]ActionType{
	PhaseStartManagement:      managementActions,
	PhaseRoll:                 {ActionRoll},
	PhaseDecideToBuy:          {ActionBuy, ActionSkipBuy},
	PhaseDecideToSell:         {ActionMortgageProperty, ActionSellHouse},
	PhaseEndManagement:        managementActions,
	PhaseDecideOnTrade:        {ActionAcceptTrade, ActionRejectTrade},
	PhaseHandleMortgagedTrade: {ActionResolveMortgagedTrade},
	PhaseAuction:              {ActionPlaceBid, ActionPassAuction},
	PhaseEndTurn:              {ActionEndTurn},
}

// Allows reports whether actions of type t are legal in phase p.
func (p GamePhase) Allows(t ActionType) bool {
	for _, a := range legalActions[p] {
		if a == t {
			return true
		}
	}
	return false
}
