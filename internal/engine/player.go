package engine

import (
	"fmt"
	"sort"
)

// Player holds one player's state.
type Player struct {
	ID         string `json:"id"`
	Cash       int    `json:"cash"`
	Position   int    `json:"position"`
	Properties []int  `json:"properties"` // owned tile indices, unique
	Debt       int    `json:"debt"`
	Creditor   string `json:"creditor,omitempty"` // "" with Debt > 0 means the bank
}

func NewPlayer(id string, cash int) *Player {
	return &Player{ID: id, Cash: cash}
}

// PlayerIDs returns n generated player IDs: p1, p2, ...
func PlayerIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i+1)
	}
	return ids
}

// Owns returns true if the tile index is in the player's holdings.
func (p *Player) Owns(tile int) bool {
	for _, t := range p.Properties {
		if t == tile {
			return true
		}
	}
	return false
}

func (p *Player) addProperty(tile int) {
	if p.Owns(tile) {
		return
	}
	p.Properties = append(p.Properties, tile)
	sort.Ints(p.Properties)
}

func (p *Player) removeProperty(tile int) {
	for i, t := range p.Properties {
		if t == tile {
			p.Properties = append(p.Properties[:i], p.Properties[i+1:]...)
			return
		}
	}
}

// InDebt returns true while an obligatory payment is outstanding.
func (p *Player) InDebt() bool { return p.Debt > 0 }
