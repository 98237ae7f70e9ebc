package wave

import (
	"context"
	"fmt"

	"tilewave/internal/bitset"
	"tilewave/internal/tiles"
)

// Unresolved is the snapshot value of a cell that has not collapsed yet.
const Unresolved = 0xFF

// Point is a grid position.
type Point struct {
	X, Y int
}

type options struct {
	seeds SeedPolicy
}

// Option customises grid construction.
type Option func(*options)

// WithSeeds selects the initially open positions.
func WithSeeds(p SeedPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.seeds = p
		}
	}
}

// Grid is the wave of a single generation run plus its open set. It is not
// safe for concurrent use.
type Grid struct {
	w, h  int
	reg   *tiles.Registry
	cells []Cell

	open   []Point
	queued []bool
	work   []int

	steps     int
	collapsed int
	err       error
}

// New builds a fully uncollapsed grid over reg. Every cell starts with all tile
// types possible; the seed policy (a stride-16 lattice by default) decides the
// initial open set.
func New(w, h int, reg *tiles.Registry, opts ...Option) (*Grid, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil tile registry", ErrTileCount)
	}
	if n := reg.Count(); n < 1 || n > tiles.MaxTypes {
		return nil, fmt.Errorf("%w: got %d", ErrTileCount, n)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d must be positive", ErrConfig, w, h)
	}
	o := options{seeds: Lattice{Stride: DefaultStride}}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Grid{
		w:      w,
		h:      h,
		reg:    reg,
		cells:  make([]Cell, w*h),
		queued: make([]bool, w*h),
	}
	full := bitset.Full(reg.Count())
	for i := range g.cells {
		g.cells[i].Wave = full
	}
	for _, p := range o.seeds.Seeds(w, h) {
		if g.InBounds(p) {
			g.enqueue(p)
		}
	}
	if len(g.open) == 0 {
		return nil, fmt.Errorf("%w: seed policy opened no in-bounds positions", ErrConfig)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Registry returns the tile types the grid collapses over.
func (g *Grid) Registry() *tiles.Registry { return g.reg }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

func (g *Grid) index(p Point) int { return p.Y*g.w + p.X }

// Cell returns a copy of the cell at (x, y).
func (g *Grid) Cell(x, y int) Cell { return g.cells[y*g.w+x] }

// Tile returns the resolved tile at (x, y), or false if it is still open.
func (g *Grid) Tile(x, y int) (int, bool) { return g.cells[y*g.w+x].Tile() }

// Entropy returns the number of tile types still possible at (x, y).
func (g *Grid) Entropy(x, y int) int { return g.cells[y*g.w+x].Wave.Count() }

// Steps returns the number of completed collapse steps.
func (g *Grid) Steps() int { return g.steps }

// Collapsed returns the number of collapsed cells.
func (g *Grid) Collapsed() int { return g.collapsed }

// OpenCount returns the size of the open set.
func (g *Grid) OpenCount() int { return len(g.open) }

// Open returns a copy of the open set in no particular order.
func (g *Grid) Open() []Point { return append([]Point(nil), g.open...) }

// Done reports whether the open set is exhausted or the run failed.
func (g *Grid) Done() bool { return len(g.open) == 0 || g.err != nil }

// Err returns the contradiction that stopped the run, if any.
func (g *Grid) Err() error { return g.err }

// Snapshot writes one value per cell in row-major order into dst: the tile
// index for collapsed cells and Unresolved for the rest. dst is grown as
// needed and returned.
func (g *Grid) Snapshot(dst []uint8) []uint8 {
	if cap(dst) < len(g.cells) {
		dst = make([]uint8, len(g.cells))
	}
	dst = dst[:len(g.cells)]
	for i, c := range g.cells {
		if t, ok := c.Tile(); ok {
			dst[i] = uint8(t)
			continue
		}
		dst[i] = Unresolved
	}
	return dst
}

func (g *Grid) enqueue(p Point) {
	i := g.index(p)
	if g.queued[i] || g.cells[i].Collapsed {
		return
	}
	g.queued[i] = true
	g.open = append(g.open, p)
}

func (g *Grid) fail(err error) error {
	if g.err == nil {
		g.err = err
	}
	return err
}

// neighbors calls fn for each in-bounds orthogonal neighbour of p.
func (g *Grid) neighbors(p Point, fn func(Point)) {
	if p.X > 0 {
		fn(Point{X: p.X - 1, Y: p.Y})
	}
	if p.X < g.w-1 {
		fn(Point{X: p.X + 1, Y: p.Y})
	}
	if p.Y > 0 {
		fn(Point{X: p.X, Y: p.Y - 1})
	}
	if p.Y < g.h-1 {
		fn(Point{X: p.X, Y: p.Y + 1})
	}
}

// Step performs one collapse-and-propagate cycle: it removes a random open
// position, collapses it, propagates the result, and opens the uncollapsed
// neighbours. It reports whether open positions remain. Once a contradiction
// has occurred every call returns it again.
func (g *Grid) Step(rng Rand) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if len(g.open) == 0 {
		return false, nil
	}

	k := rng.IntN(len(g.open))
	p := g.open[k]
	last := len(g.open) - 1
	g.open[k] = g.open[last]
	g.open = g.open[:last]

	i := g.index(p)
	g.queued[i] = false
	if _, err := g.cells[i].Collapse(rng); err != nil {
		return false, g.fail(&ContradictionError{At: p})
	}
	g.collapsed++
	g.steps++

	if err := g.Propagate(p); err != nil {
		return false, err
	}
	g.neighbors(p, g.enqueue)
	return len(g.open) > 0, nil
}

// Run calls Step until the open set is empty, ctx is cancelled or a
// contradiction occurs. onStep, if non-nil, is invoked after every successful
// step. It returns the number of steps taken by this call.
func (g *Grid) Run(ctx context.Context, rng Rand, onStep func(*Grid)) (int, error) {
	start := g.steps
	for {
		if err := ctx.Err(); err != nil {
			return g.steps - start, err
		}
		more, err := g.Step(rng)
		if err != nil {
			return g.steps - start, err
		}
		if onStep != nil && g.steps > start {
			onStep(g)
		}
		if !more {
			return g.steps - start, nil
		}
	}
}
