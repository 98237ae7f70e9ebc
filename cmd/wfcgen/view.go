package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"tilewave/internal/sims/wavecollapse"
	"tilewave/internal/termview"
)

var (
	viewCfg = wavecollapse.DefaultConfig()
	viewTPS int
)

func init() {
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Watch a tile map collapse in the terminal",
		Long: `Animate generation in the terminal, two grid rows per text row.

Keys: space pause, enter resume, n single tick, r reset, s new seed, q quit.`,
		RunE: runView,
	}

	viewCfg.Width, viewCfg.Height = 80, 46
	viewCfg.Stride = 8
	viewCfg.StepsPerTick = 8
	bindGridFlags(viewCmd, &viewCfg)
	viewCmd.Flags().IntVar(&viewCfg.StepsPerTick, "spt", viewCfg.StepsPerTick, "Collapse steps per tick")
	viewCmd.Flags().IntVar(&viewTPS, "tps", 30, "Ticks per second")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	world, err := wavecollapse.New(viewCfg)
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	v := termview.New(screen, world, viewTPS, viewCfg.Seed)
	if err := v.Run(cmd.Context()); err != nil {
		return err
	}
	if err := world.Err(); err != nil {
		log.WithError(err).Warn("run ended in a contradiction")
	}
	return nil
}
