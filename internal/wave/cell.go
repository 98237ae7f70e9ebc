package wave

import "tilewave/internal/bitset"

// Rand is the random source used for frontier and tile selection.
type Rand interface {
	// IntN returns a uniformly distributed int in [0, n).
	IntN(n int) int
}

// Cell holds the possibility set of one grid position.
type Cell struct {
	Wave      bitset.Set
	Collapsed bool
}

// Collapse fixes the cell to one of its remaining tile types, chosen uniformly
// by rank among the set bits in ascending order. Collapsing an already
// collapsed cell returns its tile without drawing from rng.
func (c *Cell) Collapse(rng Rand) (int, error) {
	n := c.Wave.Count()
	if n == 0 {
		return 0, ErrContradiction
	}
	k := 0
	if n > 1 {
		k = rng.IntN(n)
	}
	tile, _ := c.Wave.Nth(k)
	c.Wave = bitset.Single(tile)
	c.Collapsed = true
	return tile, nil
}

// Tile returns the resolved tile index of a collapsed cell.
func (c Cell) Tile() (int, bool) {
	if !c.Collapsed {
		return 0, false
	}
	return c.Wave.Nth(0)
}
