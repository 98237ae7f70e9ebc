package tiles

import (
	"image/color"

	"tilewave/internal/bitset"
)

// MaxTypes is the largest tile-type count a registry can be collapsed over.
const MaxTypes = bitset.Width

// TileType is a single tile definition. Neighbors lists the tile indices allowed
// next to this tile on any of the four sides.
type TileType struct {
	Name      string
	Color     color.RGBA
	Neighbors bitset.Set
}

// New returns an opaque tile type with the provided RGB colour and mask.
func New(name string, rgb [3]uint8, neighbors bitset.Set) TileType {
	return TileType{
		Name:      name,
		Color:     color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255},
		Neighbors: neighbors,
	}
}

// Registry is an immutable ordered list of tile types. A tile's position in the
// list is its bit index in every possibility set.
type Registry struct {
	types []TileType
}

// NewRegistry copies types into a new registry.
func NewRegistry(types []TileType) *Registry {
	return &Registry{types: append([]TileType(nil), types...)}
}

// Count returns the number of tile types.
func (r *Registry) Count() int { return len(r.types) }

// NeighborMask returns the adjacency mask of tile i.
func (r *Registry) NeighborMask(i int) bitset.Set { return r.types[i].Neighbors }

// Color returns the render colour of tile i.
func (r *Registry) Color(i int) color.RGBA { return r.types[i].Color }

// Name returns the name of tile i.
func (r *Registry) Name(i int) string { return r.types[i].Name }

// Type returns a copy of tile i.
func (r *Registry) Type(i int) TileType { return r.types[i] }

// Index looks up a tile by name.
func (r *Registry) Index(name string) (int, bool) {
	for i, t := range r.types {
		if t.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Allowed returns the union of the neighbour masks of every tile in wave.
func (r *Registry) Allowed(wave bitset.Set) bitset.Set {
	var out bitset.Set
	wave.Each(func(i int) {
		if i < len(r.types) {
			out = out.Union(r.types[i].Neighbors)
		}
	})
	return out
}

// Pair is an ordered pair of tile indices.
type Pair struct {
	A, B int
}

// Asymmetric lists pairs where A allows B as a neighbour but B does not allow A.
func (r *Registry) Asymmetric() []Pair {
	var out []Pair
	for a, t := range r.types {
		t.Neighbors.Each(func(b int) {
			if b >= len(r.types) || b == a {
				return
			}
			if !r.types[b].Neighbors.Has(a) {
				out = append(out, Pair{A: a, B: b})
			}
		})
	}
	return out
}

// Palette returns the tile colours in index order.
func (r *Registry) Palette() []color.RGBA {
	out := make([]color.RGBA, len(r.types))
	for i, t := range r.types {
		out[i] = t.Color
	}
	return out
}
