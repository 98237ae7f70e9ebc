package wavecollapse

import (
	"fmt"
	"strconv"

	"tilewave/internal/wave"
)

// Seeding policy names accepted by Config.Seeding.
const (
	SeedingLattice = "lattice"
	SeedingCorners = "corners"
	SeedingCenter  = "center"
)

// Config controls the generation session.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Tiles is a preset name or the path of a TOML tile-set file.
	Tiles string

	Seeding string
	Stride  int

	// StepsPerTick is how many collapse steps one Step call performs.
	StepsPerTick int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:        255,
		Height:       255,
		Seed:         1337,
		Tiles:        "terrain",
		Seeding:      SeedingLattice,
		Stride:       wave.DefaultStride,
		StepsPerTick: 64,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["tiles"]; ok && v != "" {
		c.Tiles = v
	}
	if v, ok := cfg["seeding"]; ok && v != "" {
		c.Seeding = v
	}
	if v, ok := cfg["stride"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Stride = parsed
		}
	}
	if v, ok := cfg["spt"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.StepsPerTick = parsed
		}
	}
	return c
}

// SeedPolicy returns the wave seed policy named by Seeding.
func (c Config) SeedPolicy() (wave.SeedPolicy, error) {
	switch c.Seeding {
	case "", SeedingLattice:
		return wave.Lattice{Stride: c.Stride}, nil
	case SeedingCorners:
		return wave.Corners{}, nil
	case SeedingCenter:
		return wave.Center{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown seeding %q", wave.ErrConfig, c.Seeding)
	}
}
