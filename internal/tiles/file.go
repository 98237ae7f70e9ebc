package tiles

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"tilewave/internal/bitset"
)

// ErrInvalidTileSet marks tile-set files that cannot be turned into a registry.
var ErrInvalidTileSet = errors.New("invalid tile set")

type fileTile struct {
	Name      string   `toml:"name"`
	Color     []int    `toml:"color"`
	Neighbors []string `toml:"neighbors,omitempty"`
	Mask      string   `toml:"mask,omitempty"`
}

type tileFile struct {
	Tiles []fileTile `toml:"tile"`
}

// Load reads a TOML tile-set file.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tile set: %w", err)
	}
	defer f.Close()
	reg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Decode parses a tile set of the form
//
//	[[tile]]
//	name = "water"
//	color = [0, 0, 230]
//	neighbors = ["water", "sand"]
//	mask = "0b11"
//
// neighbors and mask are both optional and are combined when both are given.
func Decode(r io.Reader) (*Registry, error) {
	var doc tileFile
	meta, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTileSet, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidTileSet, strings.Join(keys, ", "))
	}
	if len(doc.Tiles) > MaxTypes {
		return nil, fmt.Errorf("%w: %d tiles, at most %d supported", ErrInvalidTileSet, len(doc.Tiles), MaxTypes)
	}

	index := make(map[string]int, len(doc.Tiles))
	for i, t := range doc.Tiles {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: tile %d has no name", ErrInvalidTileSet, i)
		}
		if _, dup := index[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate tile name %q", ErrInvalidTileSet, t.Name)
		}
		index[t.Name] = i
	}

	types := make([]TileType, len(doc.Tiles))
	for i, t := range doc.Tiles {
		if len(t.Color) != 3 {
			return nil, fmt.Errorf("%w: tile %q color needs 3 components, got %d", ErrInvalidTileSet, t.Name, len(t.Color))
		}
		var rgb [3]uint8
		for c, v := range t.Color {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: tile %q color component %d out of range", ErrInvalidTileSet, t.Name, v)
			}
			rgb[c] = uint8(v)
		}
		var mask bitset.Set
		if t.Mask != "" {
			m, err := bitset.Parse(t.Mask)
			if err != nil {
				return nil, fmt.Errorf("%w: tile %q: %v", ErrInvalidTileSet, t.Name, err)
			}
			mask = m
		}
		for _, n := range t.Neighbors {
			j, ok := index[n]
			if !ok {
				return nil, fmt.Errorf("%w: tile %q references unknown neighbour %q", ErrInvalidTileSet, t.Name, n)
			}
			mask.Set(j)
		}
		types[i] = New(t.Name, rgb, mask)
	}
	return NewRegistry(types), nil
}

// Encode writes reg in the format read by Decode, listing neighbours by name.
// Mask bits beyond the registry size are written as a mask literal.
func Encode(w io.Writer, reg *Registry) error {
	doc := tileFile{Tiles: make([]fileTile, reg.Count())}
	known := bitset.Full(reg.Count())
	for i := range doc.Tiles {
		t := reg.Type(i)
		ft := fileTile{
			Name:  t.Name,
			Color: []int{int(t.Color.R), int(t.Color.G), int(t.Color.B)},
		}
		t.Neighbors.Intersect(known).Each(func(j int) {
			ft.Neighbors = append(ft.Neighbors, reg.Name(j))
		})
		if extra := t.Neighbors.Union(known); !extra.Equal(known) {
			ft.Mask = t.Neighbors.String()
			ft.Neighbors = nil
		}
		doc.Tiles[i] = ft
	}
	return toml.NewEncoder(w).Encode(doc)
}
