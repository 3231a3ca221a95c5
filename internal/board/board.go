package board

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Category tags a tile definition.
type Category string

const (
	CategoryStreet   Category = "street"
	CategoryRailroad Category = "railroad"
	CategoryUtility  Category = "utility"
	CategoryTax      Category = "tax"
	CategoryOther    Category = "other"   // GO, Free Parking
	CategoryAction   Category = "action"  // Chance, Community Chest (no effect)
	CategoryNeutral  Category = "neutral" // any tile with no effect
)

var (
	ErrEmptyBoard      = errors.New("board has no tiles")
	ErrUnknownCategory = errors.New("unknown tile category")
	ErrInvalidTile     = errors.New("invalid tile definition")
)

// Definition is one static tile record from the board catalog.
// Field names follow the catalog JSON layout.
type Definition struct {
	Name            string   `json:"name"`
	Type            Category `json:"type"`
	Cost            int      `json:"cost,omitempty"`
	Rent            int      `json:"rent,omitempty"` // base rent, or the fixed amount for tax tiles
	RentOneHouse    int      `json:"rent_one_house,omitempty"`
	RentTwoHouses   int      `json:"rent_two_houses,omitempty"`
	RentThreeHouses int      `json:"rent_three_houses,omitempty"`
	RentFourHouses  int      `json:"rent_four_houses,omitempty"`
	RentHotel       int      `json:"rent_hotel,omitempty"`
	HouseCost       int      `json:"house_cost,omitempty"`
	Mortgage        int      `json:"mortgage,omitempty"` // must be cost/2 when present; the engine derives it
	ColorSet        string   `json:"color_set,omitempty"`
}

// Ownable reports whether tiles of this definition can be bought.
func (d Definition) Ownable() bool {
	switch d.Type {
	case CategoryStreet, CategoryRailroad, CategoryUtility:
		return true
	}
	return false
}

// HouseRents returns the rent for 1..4 houses and a hotel, in that order.
func (d Definition) HouseRents() [5]int {
	return [5]int{d.RentOneHouse, d.RentTwoHouses, d.RentThreeHouses, d.RentFourHouses, d.RentHotel}
}

//go:embed default.json
var defaultBoard []byte

// Default returns the built-in 16-tile board.
func Default() []Definition {
	defs, err := Load(bytes.NewReader(defaultBoard))
	if err != nil {
		panic(fmt.Sprintf("board: embedded default board is invalid: %v", err))
	}
	return defs
}

// Load decodes and validates a JSON array of tile definitions.
func Load(r io.Reader) ([]Definition, error) {
	var defs []Definition
	if err := json.NewDecoder(r).Decode(&defs); err != nil {
		return nil, fmt.Errorf("board: decode: %w", err)
	}
	if err := Validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// LoadFile reads a board catalog from disk.
func LoadFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("board: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks that every definition carries the fields its category needs.
func Validate(defs []Definition) error {
	if len(defs) == 0 {
		return ErrEmptyBoard
	}
	for i, d := range defs {
		if d.Name == "" {
			return fmt.Errorf("board: tile %d: %w: missing name", i, ErrInvalidTile)
		}
		switch d.Type {
		case CategoryStreet:
			if d.ColorSet == "" {
				return fmt.Errorf("board: tile %d (%s): %w: street without color_set", i, d.Name, ErrInvalidTile)
			}
			if d.HouseCost <= 0 {
				return fmt.Errorf("board: tile %d (%s): %w: street without house_cost", i, d.Name, ErrInvalidTile)
			}
			for n, r := range d.HouseRents() {
				if r < 0 {
					return fmt.Errorf("board: tile %d (%s): %w: negative rent for %d houses", i, d.Name, ErrInvalidTile, n+1)
				}
			}
			fallthrough
		case CategoryRailroad, CategoryUtility:
			if d.Cost < 0 || d.Rent < 0 {
				return fmt.Errorf("board: tile %d (%s): %w: negative cost or rent", i, d.Name, ErrInvalidTile)
			}
			if d.Mortgage != 0 && d.Mortgage != d.Cost/2 {
				return fmt.Errorf("board: tile %d (%s): %w: mortgage %d is not half of cost %d", i, d.Name, ErrInvalidTile, d.Mortgage, d.Cost)
			}
		case CategoryTax:
			if d.Rent < 0 {
				return fmt.Errorf("board: tile %d (%s): %w: negative tax", i, d.Name, ErrInvalidTile)
			}
		case CategoryOther, CategoryAction, CategoryNeutral:
		default:
			return fmt.Errorf("board: tile %d (%s): %w %q", i, d.Name, ErrUnknownCategory, d.Type)
		}
	}
	return nil
}
