package engine

import "fmt"

// AuctionState tracks bidding on a tile the lander declined to buy.
type AuctionState struct {
	Tile       int      `json:"tile_id"`
	CurrentBid int      `json:"current_bid"`
	HighBidder string   `json:"high_bidder,omitempty"`
	Bidders    []string `json:"active_bidders"` // join order; rotation follows it
	Next       int      `json:"next"`           // index into Bidders of who acts now
	LastBidder string   `json:"last_bidder,omitempty"`
}

// NextBidder returns the bidder expected to act, or "".
func (a *AuctionState) NextBidder() string {
	if a == nil || len(a.Bidders) == 0 {
		return ""
	}
	return a.Bidders[a.Next]
}

func (a *AuctionState) drop(i int) {
	a.Bidders = append(a.Bidders[:i], a.Bidders[i+1:]...)
	if a.Next >= len(a.Bidders) {
		a.Next = 0
	}
}

func (g *Game) applySkipBuy(p *Player) (GamePhase, error) {
	t := g.Tiles[p.Position]
	if !t.Ownable() || t.Deed.Owner != "" {
		return PhaseEndManagement, fmt.Errorf("%w: %s is not for sale", ErrInvalidTile, t.Name)
	}

	// every active player joins, starting with the one who declined
	bidders := make([]string, 0, len(g.Order))
	for i := range g.Order {
		bidders = append(bidders, g.Order[(g.Current+i)%len(g.Order)])
	}
	g.Auction = &AuctionState{Tile: t.Index, Bidders: bidders}
	g.DecisionPlayer = g.Auction.NextBidder()
	g.record(Event{
		Type:    EventAuctionStarted,
		Player:  p.ID,
		Message: fmt.Sprintf("Player %s declined %s; auction opened", p.ID, t.Name),
		Data:    map[string]interface{}{"tile_id": t.Index, "bidders": bidders},
	})
	return PhaseAuction, nil
}

func (g *Game) applyAuction(p *Player, action Action) (GamePhase, error) {
	a := g.Auction
	if a == nil || a.NextBidder() != p.ID {
		g.Auction, g.DecisionPlayer = nil, ""
		return PhaseEndManagement, fmt.Errorf("%w: no auction awaiting %s", ErrWrongPhase, p.ID)
	}

	if action.Type == ActionPlaceBid && action.BidAmount > a.CurrentBid && p.Cash >= action.BidAmount {
		a.CurrentBid = action.BidAmount
		a.HighBidder = p.ID
		a.LastBidder = p.ID
		a.Next = (a.Next + 1) % len(a.Bidders)
		g.record(Event{
			Type:    EventBidPlaced,
			Player:  p.ID,
			Message: fmt.Sprintf("Player %s bid $%d", p.ID, action.BidAmount),
			Data:    map[string]interface{}{"tile_id": a.Tile, "bid": action.BidAmount},
		})
	} else {
		// invalid bids count as a pass
		msg := fmt.Sprintf("Player %s passed", p.ID)
		if action.Type == ActionPlaceBid {
			msg = fmt.Sprintf("Player %s bid $%d against $%d with $%d cash; treated as pass",
				p.ID, action.BidAmount, a.CurrentBid, p.Cash)
		}
		a.drop(a.Next)
		g.record(Event{
			Type:    EventAuctionPassed,
			Player:  p.ID,
			Message: msg,
			Data:    map[string]interface{}{"tile_id": a.Tile},
		})
	}

	if len(a.Bidders) > 1 {
		g.DecisionPlayer = a.NextBidder()
		return PhaseAuction, nil
	}
	return g.closeAuction(), nil
}

// closeAuction sells the tile to the high bidder, if any.
func (g *Game) closeAuction() GamePhase {
	a := g.Auction
	t := g.Tiles[a.Tile]
	if winner := g.GetPlayer(a.HighBidder); winner != nil {
		g.payBank(winner, a.CurrentBid)
		t.Deed.Owner = winner.ID
		winner.addProperty(t.Index)
		g.record(Event{
			Type:    EventAuctionWon,
			Player:  winner.ID,
			Message: fmt.Sprintf("Player %s won %s at auction for $%d", winner.ID, t.Name, a.CurrentBid),
			Data:    map[string]interface{}{"tile_id": t.Index, "bid": a.CurrentBid},
		})
	} else {
		g.record(Event{
			Type:    EventAuctionUnsold,
			Message: fmt.Sprintf("Nobody bid on %s; it stays with the bank", t.Name),
			Data:    map[string]interface{}{"tile_id": t.Index},
		})
	}
	g.Auction = nil
	g.DecisionPlayer = ""
	return PhaseEndManagement
}
