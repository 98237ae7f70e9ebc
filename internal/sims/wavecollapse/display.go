package wavecollapse

import (
	"image/color"

	"tilewave/internal/tiles"
)

// sentinel is the colour of cells that have not collapsed yet.
var sentinel = color.RGBA{A: 255}

// Palette exposes the display palette: one entry per tile type followed by the
// sentinel. Display values past the tile range resolve to the last entry.
func (w *World) Palette() []color.RGBA {
	return w.palette
}

func buildPalette(reg *tiles.Registry) []color.RGBA {
	return append(reg.Palette(), sentinel)
}

func (w *World) rebuildDisplay() {
	w.grid.Snapshot(w.display.Cells())
	w.stale = false
}
