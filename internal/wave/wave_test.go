package wave

import (
	"context"
	"errors"
	"slices"
	"testing"

	"tilewave/internal/bitset"
	"tilewave/internal/tiles"
	"tilewave/pkg/core"
)

func registryOf(n int) *tiles.Registry {
	types := make([]tiles.TileType, n)
	for i := range types {
		types[i] = tiles.New("t", [3]uint8{uint8(i), 0, 0}, bitset.Full(n))
	}
	return tiles.NewRegistry(types)
}

func TestNewValidatesTileCount(t *testing.T) {
	for _, n := range []int{0, 129, 300} {
		_, err := New(4, 4, registryOf(n))
		if !errors.Is(err, ErrTileCount) {
			t.Fatalf("T=%d: expected ErrTileCount, got %v", n, err)
		}
		if !errors.Is(err, ErrConfig) {
			t.Fatalf("T=%d: tile count errors must be configuration errors, got %v", n, err)
		}
	}
	for _, n := range []int{1, 2, 64, 65, 128} {
		g, err := New(4, 4, registryOf(n))
		if err != nil {
			t.Fatalf("T=%d: unexpected error %v", n, err)
		}
		if got := g.Entropy(3, 3); got != n {
			t.Fatalf("T=%d: initial entropy %d", n, got)
		}
	}
	if _, err := New(4, 4, nil); !errors.Is(err, ErrTileCount) {
		t.Fatalf("nil registry should be a tile count error, got %v", err)
	}
}

func TestNewValidatesSizeAndSeeds(t *testing.T) {
	if _, err := New(0, 3, tiles.Mono()); !errors.Is(err, ErrConfig) {
		t.Fatalf("zero width: expected ErrConfig, got %v", err)
	}
	if _, err := New(3, -1, tiles.Mono()); !errors.Is(err, ErrConfig) {
		t.Fatalf("negative height: expected ErrConfig, got %v", err)
	}
	_, err := New(3, 3, tiles.Mono(), WithSeeds(Points{{X: 5, Y: 5}, {X: -1, Y: 0}}))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("out of bounds seeds: expected ErrConfig, got %v", err)
	}
}

func TestSeedPolicies(t *testing.T) {
	g, err := New(255, 255, tiles.Mono())
	if err != nil {
		t.Fatal(err)
	}
	if g.OpenCount() != 256 {
		t.Fatalf("default lattice on 255x255 should open 256 seeds, got %d", g.OpenCount())
	}

	g, err = New(10, 7, tiles.Mono(), WithSeeds(Lattice{Stride: 5}))
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{0, 0}, {0, 5}, {5, 0}, {5, 5}}
	if got := g.Open(); !slices.Equal(got, want) {
		t.Fatalf("lattice seeds = %v, want %v", got, want)
	}

	g, err = New(1, 1, tiles.Mono(), WithSeeds(Corners{}))
	if err != nil {
		t.Fatal(err)
	}
	if g.OpenCount() != 1 {
		t.Fatalf("corners on 1x1 must collapse to one open position, got %d", g.OpenCount())
	}

	g, err = New(9, 5, tiles.Mono(), WithSeeds(Center{}))
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Open(); !slices.Equal(got, []Point{{4, 2}}) {
		t.Fatalf("center seed = %v", got)
	}
}

func TestCollapsePicksByRank(t *testing.T) {
	c := Cell{Wave: bitset.Of(2, 5, 9)}
	rng := core.NewScript(2)
	tile, err := c.Collapse(rng)
	if err != nil {
		t.Fatal(err)
	}
	if tile != 9 {
		t.Fatalf("rank 2 of {2,5,9} should be 9, got %d", tile)
	}
	if !c.Collapsed || !c.Wave.Equal(bitset.Single(9)) {
		t.Fatalf("collapse should leave a collapsed singleton, got %+v", c)
	}

	again, err := c.Collapse(rng)
	if err != nil || again != 9 {
		t.Fatalf("re-collapse = %d,%v want 9", again, err)
	}
	if rng.Calls() != 1 {
		t.Fatalf("re-collapse must not draw, calls=%d", rng.Calls())
	}
	if got, ok := c.Tile(); !ok || got != 9 {
		t.Fatalf("Tile() = %d,%v", got, ok)
	}
}

func TestCollapseEmptyWaveIsContradiction(t *testing.T) {
	var c Cell
	if _, err := c.Collapse(core.NewScript(0)); !errors.Is(err, ErrContradiction) {
		t.Fatalf("expected ErrContradiction, got %v", err)
	}
	if c.Collapsed {
		t.Fatal("failed collapse must not mark the cell collapsed")
	}
}

func TestAdjacencyRestrictsNeighbour(t *testing.T) {
	two := tiles.NewRegistry([]tiles.TileType{
		tiles.New("a", [3]uint8{}, bitset.Of(0, 1)),
		tiles.New("b", [3]uint8{}, bitset.Of(0, 1)),
	})
	three := tiles.NewRegistry([]tiles.TileType{
		tiles.New("a", [3]uint8{}, bitset.Of(0, 1)),
		tiles.New("b", [3]uint8{}, bitset.Of(0, 1)),
		tiles.New("c", [3]uint8{}, bitset.Of(2)),
	})
	for _, reg := range []*tiles.Registry{two, three} {
		g, err := New(2, 1, reg, WithSeeds(Points{{X: 0, Y: 0}}))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := g.Step(core.NewScript(0)); err != nil {
			t.Fatalf("T=%d: step: %v", reg.Count(), err)
		}
		if tile, ok := g.Tile(0, 0); !ok || tile != 0 {
			t.Fatalf("T=%d: left cell should collapse to A, got %d,%v", reg.Count(), tile, ok)
		}
		right := g.Cell(1, 0)
		if right.Collapsed {
			t.Fatalf("T=%d: right cell must stay open", reg.Count())
		}
		if !right.Wave.Equal(bitset.Of(0, 1)) {
			t.Fatalf("T=%d: right wave = %v, want {A,B}", reg.Count(), right.Wave.Indices())
		}
	}
}

func TestFullGridSingleType(t *testing.T) {
	g, err := New(4, 4, tiles.Mono())
	if err != nil {
		t.Fatal(err)
	}
	rng := core.NewRNG(1)
	calls := 0
	for {
		more, err := g.Step(rng)
		if err != nil {
			t.Fatalf("step %d: %v", calls, err)
		}
		calls++
		if !more {
			break
		}
	}
	if calls != 16 {
		t.Fatalf("4x4 single-type grid should finish in 16 steps, took %d", calls)
	}
	for _, v := range g.Snapshot(nil) {
		if v != 0 {
			t.Fatalf("every cell should resolve to 0, got %d", v)
		}
	}
	if more, err := g.Step(rng); more || err != nil {
		t.Fatalf("step after completion = %v,%v", more, err)
	}
}

func TestStepInvariantsAndMonotonicity(t *testing.T) {
	g, err := New(24, 24, tiles.Terrain(), WithSeeds(Lattice{Stride: 8}))
	if err != nil {
		t.Fatal(err)
	}
	rng := core.NewRNG(99)
	prev := make([]bitset.Set, 24*24)
	for i := range prev {
		prev[i] = g.cells[i].Wave
	}
	for step := 0; ; step++ {
		more, err := g.Step(rng)
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		for i, c := range g.cells {
			n := c.Wave.Count()
			if c.Collapsed && n != 1 {
				t.Fatalf("step %d: collapsed cell %d has %d possibilities", step, i, n)
			}
			if !c.Collapsed && n < 1 {
				t.Fatalf("step %d: open cell %d has no possibilities", step, i)
			}
			if !c.Wave.SubsetOf(prev[i]) {
				t.Fatalf("step %d: cell %d gained tile types %v -> %v", step, i, prev[i].Indices(), c.Wave.Indices())
			}
			prev[i] = c.Wave
		}
		if step > 24*24 {
			t.Fatal("run exceeded width*height steps")
		}
		if !more {
			break
		}
	}
	if g.Steps() != 24*24 || g.Collapsed() != 24*24 {
		t.Fatalf("connected grid should collapse every cell once, steps=%d collapsed=%d", g.Steps(), g.Collapsed())
	}
}

func TestAdjacentTilesAreCompatibleAfterRun(t *testing.T) {
	reg := tiles.Terrain()
	g, err := New(40, 30, reg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Run(context.Background(), core.NewRNG(5), nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			a, ok := g.Tile(x, y)
			if !ok {
				t.Fatalf("(%d,%d) left unresolved", x, y)
			}
			if x+1 < g.Width() {
				b, _ := g.Tile(x+1, y)
				if !reg.NeighborMask(a).Has(b) {
					t.Fatalf("(%d,%d)=%d and (%d,%d)=%d are incompatible", x, y, a, x+1, y, b)
				}
			}
			if y+1 < g.Height() {
				b, _ := g.Tile(x, y+1)
				if !reg.NeighborMask(a).Has(b) {
					t.Fatalf("(%d,%d)=%d and (%d,%d)=%d are incompatible", x, y, a, x, y+1, b)
				}
			}
		}
	}
}

func TestPropagateIsIdempotentOnStableGrid(t *testing.T) {
	g, err := New(16, 16, tiles.DefaultRamp(), WithSeeds(Lattice{Stride: 4}))
	if err != nil {
		t.Fatal(err)
	}
	rng := core.NewRNG(3)
	for i := 0; i < 40; i++ {
		if _, err := g.Step(rng); err != nil {
			t.Fatal(err)
		}
	}
	before := append([]Cell(nil), g.cells...)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if err := g.Propagate(Point{X: x, Y: y}); err != nil {
				t.Fatalf("propagate (%d,%d): %v", x, y, err)
			}
		}
	}
	if !slices.Equal(before, g.cells) {
		t.Fatal("propagating a stable grid must not mutate it")
	}
	if err := g.Propagate(Point{X: 16, Y: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestCheckerResolvesFromOneCollapse(t *testing.T) {
	g, err := New(9, 6, tiles.Checker(), WithSeeds(Center{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Step(core.NewScript(0, 1)); err != nil {
		t.Fatal(err)
	}
	first, _ := g.Tile(4, 3)
	for y := 0; y < 6; y++ {
		for x := 0; x < 9; x++ {
			c := g.Cell(x, y)
			if c.Wave.Count() != 1 {
				t.Fatalf("(%d,%d) should be forced by propagation, wave %v", x, y, c.Wave.Indices())
			}
			want := first
			if (x+y)%2 != (4+3)%2 {
				want = 1 - first
			}
			if !c.Wave.Has(want) {
				t.Fatalf("(%d,%d) = %v, want %d", x, y, c.Wave.Indices(), want)
			}
		}
	}
}

func TestContradictionIsReported(t *testing.T) {
	reg := tiles.NewRegistry([]tiles.TileType{
		tiles.New("loner", [3]uint8{}, bitset.Set{}),
	})
	g, err := New(2, 1, reg, WithSeeds(Points{{X: 0, Y: 0}}))
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.Step(core.NewScript(0))
	if !errors.Is(err, ErrContradiction) {
		t.Fatalf("expected ErrContradiction, got %v", err)
	}
	var ce *ContradictionError
	if !errors.As(err, &ce) || ce.At != (Point{X: 1, Y: 0}) {
		t.Fatalf("contradiction should point at (1,0), got %v", err)
	}
	if !g.Done() || g.Err() == nil {
		t.Fatal("grid should be done after a contradiction")
	}
	if more, again := g.Step(core.NewScript(0)); more || !errors.Is(again, ErrContradiction) {
		t.Fatalf("steps after a contradiction must keep failing, got %v,%v", more, again)
	}
	if err := g.Propagate(Point{}); !errors.Is(err, ErrContradiction) {
		t.Fatalf("propagate after a contradiction must fail, got %v", err)
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func(seed int64) []uint8 {
		g, err := New(48, 32, tiles.Terrain())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := g.Run(context.Background(), core.NewRNG(seed), nil); err != nil {
			t.Fatal(err)
		}
		return g.Snapshot(nil)
	}
	a, b := run(1234), run(1234)
	if !slices.Equal(a, b) {
		t.Fatal("identical random sequences must produce identical grids")
	}
	if slices.Equal(a, run(4321)) {
		t.Fatal("different seeds should produce different grids")
	}
}

func TestRunObservesStepsAndContext(t *testing.T) {
	g, err := New(5, 5, tiles.Mono())
	if err != nil {
		t.Fatal(err)
	}
	seen := 0
	n, err := g.Run(context.Background(), core.NewRNG(1), func(*Grid) { seen++ })
	if err != nil {
		t.Fatal(err)
	}
	if n != 25 || seen != 25 {
		t.Fatalf("expected 25 steps observed, got n=%d seen=%d", n, seen)
	}

	g, err = New(5, 5, tiles.Mono())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err = g.Run(ctx, core.NewRNG(1), nil)
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Fatalf("cancelled run = %d,%v", n, err)
	}
}

func TestSnapshotMarksOpenCells(t *testing.T) {
	g, err := New(3, 1, tiles.Mono(), WithSeeds(Points{{X: 0, Y: 0}}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Step(core.NewScript(0)); err != nil {
		t.Fatal(err)
	}
	got := g.Snapshot(make([]uint8, 1))
	if !slices.Equal(got, []uint8{0, Unresolved, Unresolved}) {
		t.Fatalf("snapshot = %v", got)
	}
}
