package wavecollapse

import (
	"context"
	"image/color"

	"tilewave/internal/core"
	"tilewave/internal/tiles"
	"tilewave/internal/wave"
	rng "tilewave/pkg/core"
)

// World is one wave function collapse session: a grid, its tile registry and
// the random source that drives it.
type World struct {
	cfg  Config
	seed int64

	reg     *tiles.Registry
	policy  wave.SeedPolicy
	grid    *wave.Grid
	rng     *rng.RNG
	display *core.ByteGrid
	stale   bool
	palette []color.RGBA
}

// New resolves cfg.Tiles and returns a session seeded with cfg.Seed.
func New(cfg Config) (*World, error) {
	reg, err := tiles.Resolve(cfg.Tiles)
	if err != nil {
		return nil, err
	}
	return NewWithRegistry(cfg, reg)
}

// NewWithRegistry returns a session over an already built registry.
func NewWithRegistry(cfg Config, reg *tiles.Registry) (*World, error) {
	if cfg.StepsPerTick <= 0 {
		cfg.StepsPerTick = 1
	}
	policy, err := cfg.SeedPolicy()
	if err != nil {
		return nil, err
	}
	grid, err := wave.New(cfg.Width, cfg.Height, reg, wave.WithSeeds(policy))
	if err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		seed:    cfg.Seed,
		reg:     reg,
		policy:  policy,
		grid:    grid,
		rng:     rng.NewRNG(cfg.Seed),
		display: core.NewByteGrid(cfg.Width, cfg.Height),
		palette: buildPalette(reg),
	}
	w.rebuildDisplay()
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "wavecollapse" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells exposes the display buffer: a tile index per collapsed cell and
// wave.Unresolved elsewhere.
func (w *World) Cells() []uint8 {
	if w.stale {
		w.rebuildDisplay()
	}
	return w.display.Cells()
}

// Config returns the session configuration.
func (w *World) Config() Config { return w.cfg }

// Seed returns the seed of the current run.
func (w *World) Seed() int64 { return w.seed }

// Grid exposes the underlying wave grid.
func (w *World) Grid() *wave.Grid { return w.grid }

// Registry returns the tile types in use.
func (w *World) Registry() *tiles.Registry { return w.reg }

// Done reports whether generation has finished or failed.
func (w *World) Done() bool { return w.grid.Done() }

// Err returns the contradiction that stopped the run, if any.
func (w *World) Err() error { return w.grid.Err() }

// Reset starts a fresh run. A zero seed reuses the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.seed = effective
	w.rng.Reseed(effective)
	// The size, registry and policy were validated by NewWithRegistry.
	grid, err := wave.New(w.cfg.Width, w.cfg.Height, w.reg, wave.WithSeeds(w.policy))
	if err != nil {
		panic(err)
	}
	w.grid = grid
	w.rebuildDisplay()
}

// Step performs up to StepsPerTick collapse steps and refreshes the display.
func (w *World) Step() {
	if w.grid.Done() {
		return
	}
	for i := 0; i < w.cfg.StepsPerTick; i++ {
		more, err := w.grid.Step(w.rng)
		if err != nil || !more {
			break
		}
	}
	w.stale = true
}

// Run steps until generation finishes, ctx is cancelled or a contradiction
// occurs. onStep observes every collapse step and may call Cells to render
// the partial state.
func (w *World) Run(ctx context.Context, onStep func(*World)) (int, error) {
	var observe func(*wave.Grid)
	if onStep != nil {
		observe = func(*wave.Grid) {
			w.stale = true
			onStep(w)
		}
	}
	n, err := w.grid.Run(ctx, w.rng, observe)
	w.stale = true
	return n, err
}

// SetIntParameter updates a runtime-adjustable parameter. Only the steps per
// tick can change while a run is in progress; stride changes apply on the next
// Reset.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "spt":
		if value < 1 {
			value = 1
		}
		if value > w.cfg.Width*w.cfg.Height {
			value = w.cfg.Width * w.cfg.Height
		}
		w.cfg.StepsPerTick = value
		return true
	case "stride":
		if value < 1 {
			value = 1
		}
		w.cfg.Stride = value
		if _, ok := w.policy.(wave.Lattice); ok {
			w.policy = wave.Lattice{Stride: value}
		}
		return true
	}
	return false
}

func init() {
	core.Register("wavecollapse", func(cfg map[string]string) (core.Sim, error) {
		w, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}

// Entropy returns the number of tile types still possible at (x, y).
func (w *World) Entropy(x, y int) int { return w.grid.Entropy(x, y) }

// MaxEntropy returns the entropy of an untouched cell.
func (w *World) MaxEntropy() int { return w.reg.Count() }
