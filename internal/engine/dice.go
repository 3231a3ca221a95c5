package engine

import "math/rand/v2"

// Dice is the single source of randomness in a match.
type Dice interface {
	// Roll returns two values in 1..6.
	Roll() (int, int)
}

type seededDice struct {
	rng *rand.Rand
}

// NewSeededDice returns uniform six-sided dice; equal seeds give equal sequences.
func NewSeededDice(seed int64) Dice {
	return &seededDice{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

func (d *seededDice) Roll() (int, int) {
	return d.rng.IntN(6) + 1, d.rng.IntN(6) + 1
}

// FixedDice replays a fixed sequence of rolls, cycling when exhausted.
type FixedDice struct {
	Rolls [][2]int
	next  int
}

func NewFixedDice(rolls ...[2]int) *FixedDice {
	return &FixedDice{Rolls: rolls}
}

func (d *FixedDice) Roll() (int, int) {
	if len(d.Rolls) == 0 {
		return 1, 1
	}
	r := d.Rolls[d.next%len(d.Rolls)]
	d.next++
	return r[0], r[1]
}
