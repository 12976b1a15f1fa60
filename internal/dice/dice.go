// Package dice provides the tabletop-style random helpers used by map
// generation and spawning.
package dice

import "math/rand"

// Roll sums n rolls of a die with the given number of sides (1..sides).
// A die with fewer than one side always rolls zero.
func Roll(rng *rand.Rand, n, sides int) int {
	if sides < 1 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += rng.Intn(sides) + 1
	}
	return total
}

// Range returns a value in [lo, hi). It returns lo when the range is empty.
func Range(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}
