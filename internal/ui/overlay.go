//go:build ebiten

package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tilewave/internal/core"
)

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim         core.Sim
	scale       int
	showEntropy bool

	img *ebiten.Image
	buf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale}
}

// Update toggles the entropy heatmap on key 1.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showEntropy = !o.showEntropy
	}
}

// Draw renders the enabled overlays onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showEntropy {
		return
	}
	field, ok := o.sim.(EntropyField)
	if !ok {
		return
	}
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.img == nil || o.img.Bounds().Dx() != size.W || o.img.Bounds().Dy() != size.H {
		o.img = ebiten.NewImage(size.W, size.H)
		o.buf = make([]byte, 4*size.W*size.H)
	}
	fillEntropyHeat(o.buf, field, size.W, size.H)
	o.img.WritePixels(o.buf)

	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.img, op)
}
