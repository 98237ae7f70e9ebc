// Command wfcgen generates, views and batch-tests wave function collapse tile
// maps from the terminal.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tilewave/internal/sims/wavecollapse"
)

var (
	log     = logrus.New()
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wfcgen",
	Short: "Generate tile maps with wave function collapse",
	Long: `wfcgen fills a 2-D grid with tile types so that every pair of adjacent
tiles is allowed by the tile set's neighbour rules.

Examples:
  wfcgen gen -o map.png
  wfcgen gen --tiles ramp --seed 7 -W 128 -H 96 -o ramp.bmp
  wfcgen view --tiles terrain
  wfcgen sweep --runs 64 --workers 8
  wfcgen tiles dump terrain > terrain.toml`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// bindGridFlags registers the flags shared by every command that builds a
// grid.
func bindGridFlags(cmd *cobra.Command, cfg *wavecollapse.Config) {
	fs := cmd.Flags()
	fs.IntVarP(&cfg.Width, "width", "W", cfg.Width, "Grid width in cells")
	fs.IntVarP(&cfg.Height, "height", "H", cfg.Height, "Grid height in cells")
	fs.Int64VarP(&cfg.Seed, "seed", "s", cfg.Seed, "Random seed")
	fs.StringVarP(&cfg.Tiles, "tiles", "t", cfg.Tiles, "Tile preset name or TOML file")
	fs.StringVar(&cfg.Seeding, "seeding", cfg.Seeding, "Seed policy: lattice, corners or center")
	fs.IntVar(&cfg.Stride, "stride", cfg.Stride, "Lattice seed spacing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
