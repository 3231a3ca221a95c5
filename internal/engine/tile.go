package engine

import (
	"fmt"

	"github.com/kevinzhu12/monopoly-bench/internal/board"
)

// TileKind discriminates the tile union.
type TileKind int

const (
	KindNeutral TileKind = iota
	KindStreet
	KindRailroad
	KindUtility
	KindTax
)

var kindNames = map[TileKind]string{
	KindNeutral:  "neutral",
	KindStreet:   "street",
	KindRailroad: "railroad",
	KindUtility:  "utility",
	KindTax:      "tax",
}

func (k TileKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k TileKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MaxHouses is the house count that denotes a hotel.
const MaxHouses = 5

// Deed holds the ownership fields shared by streets, railroads and utilities.
type Deed struct {
	Owner     string `json:"owner,omitempty"` // "" = unowned
	Mortgaged bool   `json:"mortgaged"`
	Cost      int    `json:"cost"`
	Rent      int    `json:"rent"`
}

// Lot holds the street-only building fields.
type Lot struct {
	Color      string         `json:"color"`
	Houses     int            `json:"houses"`
	HouseRents [MaxHouses]int `json:"house_rents"` // rent with 1..4 houses, then hotel
	HousePrice int            `json:"house_price"`
}

// Tile is one board square. Kind decides which of Deed, Lot and Tax apply:
// Deed is set for every ownable kind, Lot only for streets, Tax only for tax tiles.
type Tile struct {
	Index int      `json:"index"`
	Name  string   `json:"name"`
	Kind  TileKind `json:"kind"`
	Deed  *Deed    `json:"deed,omitempty"`
	Lot   *Lot     `json:"lot,omitempty"`
	Tax   int      `json:"tax,omitempty"`
}

func newTile(index int, d board.Definition) (*Tile, error) {
	t := &Tile{Index: index, Name: d.Name}
	switch d.Type {
	case board.CategoryStreet:
		t.Kind = KindStreet
		t.Lot = &Lot{Color: d.ColorSet, HouseRents: d.HouseRents(), HousePrice: d.HouseCost}
	case board.CategoryRailroad:
		t.Kind = KindRailroad
	case board.CategoryUtility:
		t.Kind = KindUtility
	case board.CategoryTax:
		t.Kind = KindTax
		t.Tax = d.Rent
	case board.CategoryOther, board.CategoryAction, board.CategoryNeutral:
		t.Kind = KindNeutral
	default:
		return nil, fmt.Errorf("tile %d (%s): %w %q", index, d.Name, board.ErrUnknownCategory, d.Type)
	}
	if d.Ownable() {
		t.Deed = &Deed{Cost: d.Cost, Rent: d.Rent}
	}
	return t, nil
}

// Ownable reports whether the tile carries a deed.
func (t *Tile) Ownable() bool { return t.Deed != nil }

// IsStreet reports whether the tile can carry houses.
func (t *Tile) IsStreet() bool { return t.Kind == KindStreet && t.Lot != nil }

// Owner returns the owning player ID, or "" for unowned and non-ownable tiles.
func (t *Tile) Owner() string {
	if t.Deed == nil {
		return ""
	}
	return t.Deed.Owner
}

// Houses returns the house count, 0 for anything but a street.
func (t *Tile) Houses() int {
	if t.Lot == nil {
		return 0
	}
	return t.Lot.Houses
}

// MortgageValue is half the cost, truncated.
func (t *Tile) MortgageValue() int {
	if t.Deed == nil {
		return 0
	}
	return t.Deed.Cost / 2
}

// UnmortgageCost is 110% of the mortgage value, truncated.
func (t *Tile) UnmortgageCost() int {
	return t.MortgageValue() * 11 / 10
}

// InterestCost is 10% of the mortgage value, truncated.
func (t *Tile) InterestCost() int {
	return t.MortgageValue() / 10
}

// HouseSalePrice is what the bank pays back for one house.
func (t *Tile) HouseSalePrice() int {
	if t.Lot == nil {
		return 0
	}
	return t.Lot.HousePrice / 2
}
