package engine

// PublicViewData is the state every player can see. It holds copies, so
// mutating it does not touch the game.
type PublicViewData struct {
	Phase          string              `json:"phase"`
	Turn           int                 `json:"turn"`
	CurrentPlayer  string              `json:"current_player"`
	ActingPlayer   string              `json:"acting_player"`
	Order          []string            `json:"order"`
	Players        []Player            `json:"players"`
	Tiles          []Tile              `json:"tiles"`
	Trade          *TradeProposal      `json:"trade,omitempty"`
	Auction        *AuctionState       `json:"auction,omitempty"`
	MortgageQueue  []MortgagedTransfer `json:"mortgage_queue,omitempty"`
	TradesThisTurn int                 `json:"trades_this_turn"`
	TradeLimit     int                 `json:"trade_limit"`
	History        []Event             `json:"history"`
}

func (g *Game) PublicView() PublicViewData {
	pv := PublicViewData{
		Phase:          g.Phase.String(),
		Turn:           g.Turn,
		ActingPlayer:   g.ActingPlayer(),
		Order:          append([]string(nil), g.Order...),
		MortgageQueue:  append([]MortgagedTransfer(nil), g.MortgageQueue...),
		TradesThisTurn: g.TradesThisTurn,
		TradeLimit:     g.config.TradeLimit,
		History:        append([]Event(nil), g.History...),
	}
	if p := g.CurrentPlayer(); p != nil {
		pv.CurrentPlayer = p.ID
	}
	for _, id := range g.Order {
		p := *g.Players[id]
		p.Properties = append([]int(nil), p.Properties...)
		pv.Players = append(pv.Players, p)
	}
	for _, t := range g.Tiles {
		c := *t
		if t.Deed != nil {
			d := *t.Deed
			c.Deed = &d
		}
		if t.Lot != nil {
			l := *t.Lot
			c.Lot = &l
		}
		pv.Tiles = append(pv.Tiles, c)
	}
	if g.Trade != nil {
		tr := *g.Trade
		tr.Offer = copyOffer(tr.Offer)
		tr.Request = copyOffer(tr.Request)
		pv.Trade = &tr
	}
	if g.Auction != nil {
		a := *g.Auction
		a.Bidders = append([]string(nil), a.Bidders...)
		pv.Auction = &a
	}
	return pv
}

// Observation is what an agent receives before choosing an action.
type Observation struct {
	PublicViewData
	PlayerID       string       `json:"player_id"`
	Self           *Player      `json:"self,omitempty"`
	IsMyTurn       bool         `json:"is_my_turn"`
	Legal          []ActionType `json:"legal_actions"`
	Buildable      []int        `json:"buildable,omitempty"`
	Sellable       []int        `json:"sellable,omitempty"`
	Mortgageable   []int        `json:"mortgageable,omitempty"`
	Unmortgageable []int        `json:"unmortgageable,omitempty"`
	Rents          map[int]int  `json:"rents,omitempty"` // tile index -> current rent, owned tiles only
	Pending        []int        `json:"pending_mortgages,omitempty"`
}

// ObservationFor builds the observation for playerID, including the
// derived helper lists for the player's own holdings.
func (g *Game) ObservationFor(playerID string) Observation {
	obs := Observation{
		PublicViewData: g.PublicView(),
		PlayerID:       playerID,
		Legal:          g.LegalActions(playerID),
	}
	obs.IsMyTurn = len(obs.Legal) > 0

	p := g.GetPlayer(playerID)
	if p == nil {
		return obs
	}
	for i := range obs.Players {
		if obs.Players[i].ID == playerID {
			obs.Self = &obs.Players[i]
			break
		}
	}

	obs.Buildable = g.BuildableTiles(p)
	obs.Sellable = g.SellableHouseTiles(p)
	obs.Mortgageable = g.MortgageableTiles(p)
	obs.Unmortgageable = g.UnmortgageableTiles(p)
	obs.Rents = make(map[int]int, len(p.Properties))
	for _, idx := range p.Properties {
		obs.Rents[idx] = g.CurrentRent(g.Tiles[idx])
	}
	for _, m := range g.MortgageQueue {
		if m.Receiver == playerID {
			obs.Pending = append(obs.Pending, m.Tile)
		}
	}
	return obs
}

// Tile returns the viewed tile at index, or nil.
func (v *PublicViewData) Tile(index int) *Tile {
	if index < 0 || index >= len(v.Tiles) {
		return nil
	}
	return &v.Tiles[index]
}

// Player returns the viewed player with id, or nil.
func (v *PublicViewData) Player(id string) *Player {
	for i := range v.Players {
		if v.Players[i].ID == id {
			return &v.Players[i]
		}
	}
	return nil
}

// Can reports whether t is among the legal actions.
func (o *Observation) Can(t ActionType) bool {
	for _, a := range o.Legal {
		if a == t {
			return true
		}
	}
	return false
}
