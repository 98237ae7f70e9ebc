package tiles

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"tilewave/internal/bitset"
)

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("unknown tile preset")

var presets = map[string]func() *Registry{
	"terrain": Terrain,
	"ramp":    DefaultRamp,
	"checker": Checker,
	"mono":    Mono,
}

// Presets returns the registered preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset builds the named preset.
func Preset(name string) (*Registry, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownPreset, name, strings.Join(Presets(), ", "))
	}
	return build(), nil
}

// Resolve interprets ref as a preset name, or as a TOML file path when it ends
// in .toml.
func Resolve(ref string) (*Registry, error) {
	if strings.HasSuffix(strings.ToLower(ref), ".toml") {
		return Load(ref)
	}
	return Preset(ref)
}

// Terrain is a water-to-snow height gradient. Each type only touches its
// immediate neighbours in the gradient.
func Terrain() *Registry {
	mask := func(m uint64) bitset.Set { return bitset.FromWords(m, 0) }
	return NewRegistry([]TileType{
		New("abyss", [3]uint8{0, 0, 200}, mask(0b000000000000011)),
		New("deep", [3]uint8{0, 0, 215}, mask(0b000000000000111)),
		New("water", [3]uint8{0, 0, 230}, mask(0b000000000001110)),
		New("shallows", [3]uint8{0, 0, 255}, mask(0b000000000011100)),

		New("wet-sand", [3]uint8{230, 230, 0}, mask(0b000000000111000)),
		New("sand", [3]uint8{255, 255, 0}, mask(0b000000001110000)),

		New("meadow", [3]uint8{0, 255, 0}, mask(0b000000011100000)),
		New("grass", [3]uint8{0, 220, 0}, mask(0b000000111000000)),
		New("scrub", [3]uint8{0, 200, 0}, mask(0b000001110000000)),

		New("forest", [3]uint8{0, 120, 0}, mask(0b000011100000000)),
		New("deep-forest", [3]uint8{0, 100, 0}, mask(0b000111000000000)),

		New("rock", [3]uint8{100, 100, 100}, mask(0b001110000000000)),
		New("cliff", [3]uint8{120, 120, 120}, mask(0b011100000000000)),

		New("snow", [3]uint8{230, 230, 230}, mask(0b111000000000000)),
		New("peak", [3]uint8{255, 255, 255}, mask(0b110000000000000)),
	})
}

// Checker holds two types that may only sit next to each other.
func Checker() *Registry {
	return NewRegistry([]TileType{
		New("dark", [3]uint8{40, 40, 40}, bitset.Of(1)),
		New("light", [3]uint8{220, 220, 220}, bitset.Of(0)),
	})
}

// Mono holds a single self-compatible type.
func Mono() *Registry {
	return NewRegistry([]TileType{
		New("plain", [3]uint8{128, 128, 128}, bitset.Of(0)),
	})
}

var defaultRampStops = []color.RGBA{
	{R: 10, G: 20, B: 90, A: 255},
	{R: 30, G: 140, B: 170, A: 255},
	{R: 235, G: 220, B: 150, A: 255},
	{R: 60, G: 150, B: 60, A: 255},
	{R: 110, G: 100, B: 90, A: 255},
	{R: 250, G: 250, B: 250, A: 255},
}

// DefaultRamp is a 24-step band ramp over a sea-to-summit colour scale.
func DefaultRamp() *Registry {
	return Ramp(defaultRampStops, 24, 1)
}
