//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"tilewave/internal/core"
)

const (
	panelPadding = 8
	lineHeight   = 16
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	intSetter  core.IntParameterSetter
	title      string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: buildTitle(sim)}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	return h
}

// Update refreshes the cached parameter snapshot and applies the [ and ] keys,
// which halve and double the steps taken per tick.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	if h.intSetter == nil {
		return
	}
	direction := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		direction = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		direction = 1
	}
	if direction == 0 {
		return
	}
	if v, ok := stepAdjust(h.snapshot, direction); ok {
		h.intSetter.SetIntParameter("spt", v)
		h.snapshot = provider.Parameters()
	}
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + 12
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	y += lineHeight + 4
	lines := panelLines(h.snapshot)
	if len(lines) == 0 {
		lines = []string{"No parameters"}
	}
	for _, line := range lines {
		if y > height-panelPadding {
			break
		}
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		y += lineHeight
	}
	if h.intSetter != nil && y+lineHeight <= height-panelPadding {
		text.Draw(h.panel, "[ ] steps/tick  1 entropy", face, panelPadding, y+lineHeight, color.RGBA{R: 160, G: 160, B: 170, A: 255})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Parameters"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s", strings.ToUpper(name[:1]), name[1:])
}
