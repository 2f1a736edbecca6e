package monopoly

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestRollDiceRange checks that both dice always land in [1,6] and the
// derived total and double flags stay consistent, for any seed.
func TestRollDiceRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		d := RollDice(rand.New(rand.NewSource(seed)))

		if d.First < 1 || d.First > 6 {
			t.Fatalf("first die out of range: %d", d.First)
		}
		if d.Second < 1 || d.Second > 6 {
			t.Fatalf("second die out of range: %d", d.Second)
		}
		if d.Total() != d.First+d.Second {
			t.Fatalf("total %d does not match dice %d+%d", d.Total(), d.First, d.Second)
		}
		if d.IsDouble() != (d.First == d.Second) {
			t.Fatalf("double flag wrong for %d/%d", d.First, d.Second)
		}
	})
}

func TestRollDiceDeterministic(t *testing.T) {
	a := RollDice(rand.New(rand.NewSource(42)))
	b := RollDice(rand.New(rand.NewSource(42)))
	require.Equal(t, a, b, "same seed must give the same roll")
}

func TestDiceString(t *testing.T) {
	d := Dice{First: 2, Second: 5}
	require.Equal(t, "2 + 5 (7)", d.String())
	require.False(t, d.IsDouble())
	require.True(t, Dice{First: 3, Second: 3}.IsDouble())
}
