package ui

import "image/color"

// EntropyField exposes per-cell uncertainty for the entropy overlay.
type EntropyField interface {
	Entropy(x, y int) int
	MaxEntropy() int
}

var heatColor = color.RGBA{R: 255, G: 64, B: 160}

// fillEntropyHeat writes premultiplied RGBA pixels into buf. Resolved cells
// stay transparent; open cells get more opaque the more types they still
// allow.
func fillEntropyHeat(buf []byte, field EntropyField, w, h int) {
	top := field.MaxEntropy()
	if top < 2 {
		clear(buf)
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := 4 * (y*w + x)
			if o+3 >= len(buf) {
				return
			}
			e := field.Entropy(x, y)
			if e <= 1 {
				buf[o], buf[o+1], buf[o+2], buf[o+3] = 0, 0, 0, 0
				continue
			}
			a := uint32(48 + 160*(e-1)/(top-1))
			buf[o+0] = uint8(uint32(heatColor.R) * a / 255)
			buf[o+1] = uint8(uint32(heatColor.G) * a / 255)
			buf[o+2] = uint8(uint32(heatColor.B) * a / 255)
			buf[o+3] = uint8(a)
		}
	}
}
