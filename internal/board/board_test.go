package board_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kevinzhu12/monopoly-bench/internal/board"
)

func TestDefaultBoard(t *testing.T) {
	defs := board.Default()
	if len(defs) != 16 {
		t.Fatalf("default board: got %d tiles, want 16", len(defs))
	}
	if defs[0].Name != "GO" || defs[0].Type != board.CategoryOther {
		t.Errorf("tile 0 = %+v, want GO", defs[0])
	}
	colors := map[string]int{}
	for _, d := range defs {
		if d.Type == board.CategoryStreet {
			colors[d.ColorSet]++
		}
	}
	for _, c := range []string{"orange", "red", "green", "dark_blue"} {
		if colors[c] != 2 {
			t.Errorf("color %s: got %d streets, want 2", c, colors[c])
		}
	}
}

func TestHouseRents(t *testing.T) {
	d := board.Default()[15] // Boardwalk
	want := [5]int{200, 600, 1400, 1700, 2000}
	if got := d.HouseRents(); got != want {
		t.Errorf("HouseRents() = %v, want %v", got, want)
	}
	if !d.Ownable() {
		t.Error("Boardwalk should be ownable")
	}
	if board.Default()[1].Ownable() {
		t.Error("Income Tax should not be ownable")
	}
}

func TestLoadRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{"empty", `[]`, board.ErrEmptyBoard},
		{"unknown category", `[{"name":"X","type":"jail"}]`, board.ErrUnknownCategory},
		{"missing name", `[{"type":"other"}]`, board.ErrInvalidTile},
		{"street without color", `[{"name":"S","type":"street","cost":60,"house_cost":50}]`, board.ErrInvalidTile},
		{"street without house cost", `[{"name":"S","type":"street","cost":60,"color_set":"brown"}]`, board.ErrInvalidTile},
		{"negative tax", `[{"name":"T","type":"tax","rent":-5}]`, board.ErrInvalidTile},
		{"mortgage not half of cost", `[{"name":"R","type":"railroad","cost":200,"rent":25,"mortgage":120}]`, board.ErrInvalidTile},
	}
	for _, tt := range tests {
		_, err := board.Load(strings.NewReader(tt.json))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got error %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestLoadCategories(t *testing.T) {
	data := `[
		{"name":"GO","type":"other"},
		{"name":"Chance","type":"action"},
		{"name":"Jail","type":"neutral"},
		{"name":"Reading Railroad","type":"railroad","cost":200,"rent":25,"mortgage":100}
	]`
	defs, err := board.Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if defs[2].Type != board.CategoryNeutral || defs[2].Ownable() {
		t.Errorf("neutral tile = %+v", defs[2])
	}
	if defs[3].Mortgage != 100 {
		t.Errorf("mortgage = %d, want 100", defs[3].Mortgage)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	if _, err := board.Load(strings.NewReader(`{"name":`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	data := `[{"name":"GO","type":"other"},{"name":"Mediterranean Avenue","type":"street","cost":60,"rent":2,"house_cost":50,"color_set":"brown"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := board.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(defs) != 2 || defs[1].Cost != 60 {
		t.Errorf("unexpected definitions: %+v", defs)
	}
	if _, err := board.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
