package tiles

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"tilewave/internal/bitset"
)

// Ramp builds n tile types whose colours are sampled evenly along stops,
// blended in CIE-Lab space. Type i may touch type j when |i-j| <= reach, so the
// generated map forms smooth bands. n is clamped to [1, MaxTypes].
func Ramp(stops []color.RGBA, n, reach int) *Registry {
	if n < 1 {
		n = 1
	}
	if n > MaxTypes {
		n = MaxTypes
	}
	if reach < 0 {
		reach = 0
	}
	types := make([]TileType, n)
	for i := range types {
		var mask bitset.Set
		for j := i - reach; j <= i+reach; j++ {
			if j >= 0 && j < n {
				mask.Set(j)
			}
		}
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r, g, b := sampleStops(stops, t)
		types[i] = New(fmt.Sprintf("band-%02d", i), [3]uint8{r, g, b}, mask)
	}
	return NewRegistry(types)
}

// sampleStops returns the colour at position t in [0, 1] along stops.
func sampleStops(stops []color.RGBA, t float64) (uint8, uint8, uint8) {
	switch len(stops) {
	case 0:
		return 0, 0, 0
	case 1:
		return stops[0].R, stops[0].G, stops[0].B
	}
	segs := float64(len(stops) - 1)
	pos := t * segs
	seg := int(pos)
	if seg >= len(stops)-1 {
		seg = len(stops) - 2
	}
	local := pos - float64(seg)
	a, _ := colorful.MakeColor(stops[seg])
	b, _ := colorful.MakeColor(stops[seg+1])
	return a.BlendLab(b, local).Clamped().RGB255()
}
