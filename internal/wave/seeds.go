package wave

// DefaultStride is the lattice spacing used when none is configured.
const DefaultStride = 16

// SeedPolicy decides which positions are open before the first step.
type SeedPolicy interface {
	Seeds(w, h int) []Point
}

// Lattice opens every position whose coordinates are multiples of Stride,
// giving propagation many simultaneous fronts on large grids.
type Lattice struct {
	Stride int
}

// Seeds implements SeedPolicy.
func (l Lattice) Seeds(w, h int) []Point {
	stride := l.Stride
	if stride <= 0 {
		stride = DefaultStride
	}
	var pts []Point
	for x := 0; x < w; x += stride {
		for y := 0; y < h; y += stride {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// Corners opens the four grid corners.
type Corners struct{}

// Seeds implements SeedPolicy.
func (Corners) Seeds(w, h int) []Point {
	return []Point{
		{X: 0, Y: 0},
		{X: 0, Y: h - 1},
		{X: w - 1, Y: 0},
		{X: w - 1, Y: h - 1},
	}
}

// Center opens the middle of the grid.
type Center struct{}

// Seeds implements SeedPolicy.
func (Center) Seeds(w, h int) []Point {
	return []Point{{X: w / 2, Y: h / 2}}
}

// Points opens an explicit list of positions.
type Points []Point

// Seeds implements SeedPolicy.
func (p Points) Seeds(int, int) []Point { return p }
