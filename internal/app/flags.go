package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim    string
	Tiles  string
	W      int
	H      int
	Stride int
	SPT    int
	Scale  int
	TPS    int
	Seed   int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "wavecollapse", Tiles: "terrain", Scale: 3, TPS: 60, Seed: 1337}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.Tiles, "tiles", c.Tiles, "tile preset name or TOML file")
	fs.IntVar(&c.W, "w", c.W, "grid width (0 keeps the simulation default)")
	fs.IntVar(&c.H, "h", c.H, "grid height (0 keeps the simulation default)")
	fs.IntVar(&c.Stride, "stride", c.Stride, "seed lattice stride (0 keeps the default)")
	fs.IntVar(&c.SPT, "spt", c.SPT, "collapse steps per tick (0 keeps the default)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
}

// SimConfig converts the flags into the key/value form accepted by
// core.Factory. Unset values are omitted so the simulation keeps its defaults.
func (c *Config) SimConfig() map[string]string {
	m := map[string]string{"seed": strconv.FormatInt(c.Seed, 10)}
	if c.Tiles != "" {
		m["tiles"] = c.Tiles
	}
	for key, v := range map[string]int{"w": c.W, "h": c.H, "stride": c.Stride, "spt": c.SPT} {
		if v > 0 {
			m[key] = strconv.Itoa(v)
		}
	}
	return m
}
