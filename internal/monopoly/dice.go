package monopoly

import (
	"fmt"
	"math/rand"
)

// Dice is the result of rolling two six-sided dice.
type Dice struct {
	First  int
	Second int
}

// RollDice rolls two independent dice using r, so tests can force known
// outcomes by supplying a seeded source.
func RollDice(r *rand.Rand) Dice {
	return Dice{
		First:  r.Intn(6) + 1,
		Second: r.Intn(6) + 1,
	}
}

// Total is the sum of both dice.
func (d Dice) Total() int {
	return d.First + d.Second
}

// IsDouble reports whether both dice show the same value.
func (d Dice) IsDouble() bool {
	return d.First == d.Second
}

func (d Dice) String() string {
	return fmt.Sprintf("%d + %d (%d)", d.First, d.Second, d.Total())
}
