// Package termview animates a generator in a terminal. Each character cell
// shows two grid rows using an upper half block: the foreground is the upper
// row and the background the lower one.
package termview

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"tilewave/internal/core"
)

const halfBlock = '▀'

// View draws a core.Sim onto a tcell screen and handles its key bindings.
type View struct {
	screen tcell.Screen
	sim    core.Sim
	pacer  *core.FixedStep

	paused   bool
	tickOnce bool
	seed     int64
	reseed   func() int64
}

// New returns a view over sim. tps is the target number of sim ticks per
// second; seed is used by the reset key.
func New(screen tcell.Screen, sim core.Sim, tps int, seed int64) *View {
	return &View{
		screen: screen,
		sim:    sim,
		pacer:  core.NewFixedStep(tps),
		seed:   seed,
		reseed: func() int64 { return time.Now().UnixNano() },
	}
}

// Paused reports whether automatic stepping is suspended.
func (v *View) Paused() bool { return v.paused }

// HandleEvent applies one input event and reports whether the view should
// keep running.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *View) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		v.paused = false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case 'n':
			v.tickOnce = true
		case 'r':
			v.sim.Reset(v.seed)
		case 's':
			v.seed = v.reseed()
			v.sim.Reset(v.seed)
		}
	}
	return true
}

// Tick advances the sim by the number of ticks owed to the pacer, or by one
// tick after a single-step request, then redraws.
func (v *View) Tick() {
	due := v.pacer.Due()
	if v.paused {
		due = 0
	}
	if v.tickOnce {
		due = max(due, 1)
		v.tickOnce = false
	}
	for i := 0; i < due && !v.done(); i++ {
		v.sim.Step()
	}
	v.Draw()
}

func (v *View) done() bool {
	f, ok := v.sim.(core.Finisher)
	return ok && f.Done()
}

// Draw renders the grid and a status line.
func (v *View) Draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	size := v.sim.Size()
	cells := v.sim.Cells()
	var palette []color.RGBA
	if p, ok := v.sim.(core.PaletteProvider); ok {
		palette = p.Palette()
	}

	rows := sh - 1
	for ty := 0; ty < rows && ty*2 < size.H; ty++ {
		for x := 0; x < sw && x < size.W; x++ {
			top := colorAt(cells, palette, size.W, x, ty*2)
			bottom := tcell.ColorBlack
			if ty*2+1 < size.H {
				bottom = colorAt(cells, palette, size.W, x, ty*2+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			v.screen.SetContent(x, ty, halfBlock, nil, style)
		}
	}
	if sh > 0 {
		v.drawStatus(sw, sh-1)
	}
	v.screen.Show()
}

func (v *View) drawStatus(width, y int) {
	status := v.sim.Name()
	if p, ok := v.sim.(core.ParameterProvider); ok {
		snap := p.Parameters()
		steps, _ := snap.Lookup("steps")
		open, _ := snap.Lookup("open")
		status = fmt.Sprintf("%s seed=%d steps=%s open=%s", status, v.seed, steps.Value, open.Value)
	}
	switch {
	case v.done():
		status += " [DONE]"
	case v.paused:
		status += " [PAUSED]"
	}
	status += "  space=pause n=step r=reset s=reseed q=quit"
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func colorAt(cells []uint8, palette []color.RGBA, w, x, y int) tcell.Color {
	i := y*w + x
	if i >= len(cells) || len(palette) == 0 {
		return tcell.ColorBlack
	}
	idx := int(cells[i])
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	c := palette[idx]
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run polls input and ticks the sim until the user quits or ctx is done. The
// caller owns the screen and must Init and Fini it.
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(v.pacer.Interval())
	defer ticker.Stop()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Tick()
		}
	}
}
