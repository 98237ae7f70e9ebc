package core

import (
	"testing"
	"time"
)

func TestByteGridBasics(t *testing.T) {
	g := NewByteGrid(0, 3)
	if g.W != 1 || g.H != 3 {
		t.Fatalf("non-positive width should clamp to 1, got %dx%d", g.W, g.H)
	}
	g = NewByteGrid(4, 2)
	g.Cells()[g.Index(3, 1)] = 7
	if g.At(3, 1) != 7 {
		t.Fatalf("At(3,1) = %d", g.At(3, 1))
	}
	if !g.InBounds(3, 1) || g.InBounds(4, 0) || g.InBounds(0, -1) {
		t.Fatal("InBounds disagrees with grid size")
	}
	g.Fill(9)
	for i, v := range g.Cells() {
		if v != 9 {
			t.Fatalf("cell %d = %d after Fill", i, v)
		}
	}
}

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	if n := fs.Due(); n != 1 {
		t.Fatalf("first call should owe the primed tick, got %d", n)
	}
	clock = clock.Add(250 * time.Millisecond)
	if n := fs.Due(); n != 2 {
		t.Fatalf("250ms at 10 TPS should owe 2 ticks, got %d", n)
	}
	clock = clock.Add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("carried 50ms plus 50ms should complete a tick")
	}
	if fs.ShouldStep() {
		t.Fatal("no time passed, no tick expected")
	}
	clock = clock.Add(time.Hour)
	if n := fs.Due(); n != maxCatchUp {
		t.Fatalf("stall should be capped at %d ticks, got %d", maxCatchUp, n)
	}
	if n := fs.Due(); n != 0 {
		t.Fatalf("capped catch-up should drop the backlog, got %d", n)
	}
	if fs.Interval() != 100*time.Millisecond {
		t.Fatalf("interval = %s", fs.Interval())
	}
}

func TestRegisterIgnoresEmpty(t *testing.T) {
	before := len(Sims())
	Register("", func(map[string]string) (Sim, error) { return nil, nil })
	Register("nil-factory", nil)
	if len(Sims()) != before {
		t.Fatal("empty names and nil factories must be ignored")
	}
}

func TestParameterLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Grid", Params: []Parameter{{Key: "w", Value: "8"}}},
		{Name: "Tiles", Params: []Parameter{{Key: "tiles", Value: "terrain"}}},
	}}
	if p, ok := snap.Lookup("tiles"); !ok || p.Value != "terrain" {
		t.Fatalf("Lookup(tiles) = %+v,%v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup should miss unknown keys")
	}
}
