package engine

// ActionType identifies player actions sent to Game.Apply.
type ActionType string

const (
	ActionProceed               ActionType = "proceed"
	ActionRoll                  ActionType = "roll"
	ActionBuy                   ActionType = "buy"
	ActionSkipBuy               ActionType = "skip_buy"
	ActionMortgageProperty      ActionType = "mortgage_property"
	ActionUnmortgageProperty    ActionType = "unmortgage_property"
	ActionSellHouse             ActionType = "sell_house"
	ActionBuildHouse            ActionType = "build_house"
	ActionProposeTrade          ActionType = "propose_trade"
	ActionAcceptTrade           ActionType = "accept_trade"
	ActionRejectTrade           ActionType = "reject_trade"
	ActionResolveMortgagedTrade ActionType = "resolve_mortgaged_trade"
	ActionPlaceBid              ActionType = "place_bid"
	ActionPassAuction           ActionType = "pass_auction"
	ActionEndTurn               ActionType = "end_turn"
)

// AllActionTypes returns every action type the engine understands.
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionProceed, ActionRoll, ActionBuy, ActionSkipBuy,
		ActionMortgageProperty, ActionUnmortgageProperty, ActionSellHouse, ActionBuildHouse,
		ActionProposeTrade, ActionAcceptTrade, ActionRejectTrade, ActionResolveMortgagedTrade,
		ActionPlaceBid, ActionPassAuction, ActionEndTurn,
	}
}

// Valid reports whether t is a known action type.
func (t ActionType) Valid() bool {
	for _, a := range AllActionTypes() {
		if a == t {
			return true
		}
	}
	return false
}

// MortgageDecision is the receiver's choice for a mortgaged tile obtained by trade.
type MortgageDecision string

const (
	DecisionUnmortgageNow   MortgageDecision = "unmortgage_now"
	DecisionPayInterestOnly MortgageDecision = "pay_interest_only"
)

// TradeOffer is one side of a trade: cash plus a set of tile indices.
type TradeOffer struct {
	Cash       int   `json:"cash"`
	Properties []int `json:"properties"`
}

// Action is a player's action input.
type Action struct {
	Type ActionType `json:"type"`
	// Params depend on Type:
	// mortgage_property, unmortgage_property, sell_house, build_house: TileID
	// resolve_mortgaged_trade: TileID, Decision
	// place_bid: BidAmount
	// propose_trade: ToPlayer, Offer, Request
	TileID    int              `json:"tile_id,omitempty"`
	BidAmount int              `json:"bid_amount,omitempty"`
	ToPlayer  string           `json:"to_player,omitempty"`
	Offer     TradeOffer       `json:"offer"`
	Request   TradeOffer       `json:"request"`
	Decision  MortgageDecision `json:"decision,omitempty"`
}

// EventType identifies events recorded by the engine.
type EventType string

const (
	EventRolled           EventType = "rolled"
	EventBought           EventType = "bought"
	EventRentPaid         EventType = "rent_paid"
	EventTaxPaid          EventType = "tax_paid"
	EventDebtIncurred     EventType = "debt_incurred"
	EventDebtSettled      EventType = "debt_settled"
	EventMortgaged        EventType = "mortgaged"
	EventUnmortgaged      EventType = "unmortgaged"
	EventHouseBuilt       EventType = "house_built"
	EventHouseSold        EventType = "house_sold"
	EventTradeProposed    EventType = "trade_proposed"
	EventTradeAccepted    EventType = "trade_accepted"
	EventTradeRejected    EventType = "trade_rejected"
	EventTradeVoided      EventType = "trade_voided"
	EventMortgageResolved EventType = "mortgage_resolved"
	EventAuctionStarted   EventType = "auction_started"
	EventBidPlaced        EventType = "bid_placed"
	EventAuctionPassed    EventType = "auction_passed"
	EventAuctionWon       EventType = "auction_won"
	EventAuctionUnsold    EventType = "auction_unsold"
	EventTurnEnd          EventType = "turn_end"
	EventBankrupt         EventType = "bankrupt"
	EventGameOver         EventType = "game_over"
	EventRejected         EventType = "rejected"
)

// Event is recorded in the recent-events log after state changes.
type Event struct {
	Type    EventType              `json:"type"`
	Player  string                 `json:"player,omitempty"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
