package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tilewave/internal/tiles"
)

func init() {
	tilesCmd := &cobra.Command{
		Use:   "tiles",
		Short: "Inspect tile sets",
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in tile presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTiles(cmd.OutOrStdout())
		},
	}
	dumpCmd := &cobra.Command{
		Use:   "dump NAME",
		Short: "Print a preset or tile file as TOML",
		Long: `Print a tile set in the TOML format accepted by --tiles. Dumping a preset
is a convenient starting point for a custom rule set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpTiles(cmd.OutOrStdout(), args[0])
		},
	}
	tilesCmd.AddCommand(listCmd, dumpCmd)
	rootCmd.AddCommand(tilesCmd)
}

func listTiles(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPES\tASYMMETRIC")
	for _, name := range tiles.Presets() {
		reg, err := tiles.Preset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\n", name, reg.Count(), len(reg.Asymmetric()))
	}
	return tw.Flush()
}

func dumpTiles(out io.Writer, ref string) error {
	reg, err := tiles.Resolve(ref)
	if err != nil {
		return err
	}
	return tiles.Encode(out, reg)
}
