package wave

import "fmt"

// Propagate restricts the waves around origin until the grid is stable again.
// A neighbour keeps only the tile types allowed by at least one type still
// possible at the cell being processed; every neighbour that shrinks is
// re-processed in turn. The walk is depth-first over an explicit stack, so its
// memory is bounded by the grid size rather than the call stack.
//
// Propagating from a cell whose surroundings are already consistent changes
// nothing.
func (g *Grid) Propagate(origin Point) error {
	if !g.InBounds(origin) {
		return fmt.Errorf("propagate (%d,%d): %w", origin.X, origin.Y, ErrOutOfBounds)
	}
	if g.err != nil {
		return g.err
	}

	stack := append(g.work[:0], g.index(origin))
	defer func() { g.work = stack[:0] }()

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		allowed := g.reg.Allowed(g.cells[c].Wave)
		p := Point{X: c % g.w, Y: c / g.w}

		var contradiction *Point
		g.neighbors(p, func(n Point) {
			if contradiction != nil {
				return
			}
			ni := g.index(n)
			old := g.cells[ni].Wave
			next := old.Intersect(allowed)
			if next == old {
				return
			}
			g.cells[ni].Wave = next
			if next.IsEmpty() {
				contradiction = &n
				return
			}
			stack = append(stack, ni)
		})
		if contradiction != nil {
			return g.fail(&ContradictionError{At: *contradiction})
		}
	}
	return nil
}
