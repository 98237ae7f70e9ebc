package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tilewave/internal/render"
	"tilewave/internal/sims/wavecollapse"
	"tilewave/internal/wave"
)

type genOptions struct {
	cfg        wavecollapse.Config
	output     string
	framesDir  string
	frameEvery int
	timeout    time.Duration
}

type genResult struct {
	steps   int
	frames  int
	elapsed time.Duration
}

var genOpts = genOptions{cfg: wavecollapse.DefaultConfig()}

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate one tile map and write it as an image",
		Long: `Generate a tile map and write it as PNG, BMP or TIFF, chosen by the
output file extension. Intermediate frames can be written to a directory to
watch the collapse spread.

Examples:
  wfcgen gen -o map.png
  wfcgen gen --tiles rules.toml -o map.tiff
  wfcgen gen -o map.png --frames frames --frame-every 500`,
		RunE: runGen,
	}

	bindGridFlags(genCmd, &genOpts.cfg)
	genCmd.Flags().StringVarP(&genOpts.output, "output", "o", "wfc.png", "Output image (.png, .bmp or .tiff)")
	genCmd.Flags().StringVar(&genOpts.framesDir, "frames", "", "Directory for intermediate PNG frames")
	genCmd.Flags().IntVar(&genOpts.frameEvery, "frame-every", 1000, "Steps between intermediate frames")
	genCmd.Flags().DurationVar(&genOpts.timeout, "timeout", time.Minute, "Generation timeout")

	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	res, err := generate(cmd.Context(), genOpts)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"iterations": res.steps,
		"duration":   res.elapsed.Round(time.Millisecond),
		"frames":     res.frames,
		"output":     genOpts.output,
	}).Info("generation finished")
	return nil
}

// generate runs one session to completion. A contradiction still writes the
// partial map to the output so it can be inspected.
func generate(ctx context.Context, opts genOptions) (genResult, error) {
	var res genResult
	if _, err := render.FormatFor(opts.output); err != nil {
		return res, err
	}
	world, err := wavecollapse.New(opts.cfg)
	if err != nil {
		return res, fmt.Errorf("configure: %w", err)
	}
	for _, p := range world.Registry().Asymmetric() {
		log.WithFields(logrus.Fields{
			"a": world.Registry().Name(p.A),
			"b": world.Registry().Name(p.B),
		}).Warn("asymmetric neighbour rule")
	}
	log.WithFields(logrus.Fields{
		"width":  opts.cfg.Width,
		"height": opts.cfg.Height,
		"seed":   opts.cfg.Seed,
		"tiles":  opts.cfg.Tiles,
		"types":  world.Registry().Count(),
		"seeds":  world.Grid().OpenCount(),
	}).Debug("starting generation")

	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	var onStep func(*wavecollapse.World)
	var frameErr error
	if opts.framesDir != "" && opts.frameEvery > 0 {
		if err := os.MkdirAll(opts.framesDir, 0o755); err != nil {
			return res, err
		}
		onStep = func(w *wavecollapse.World) {
			if frameErr != nil || w.Grid().Steps()%opts.frameEvery != 0 {
				return
			}
			path := filepath.Join(opts.framesDir, fmt.Sprintf("frame-%06d.png", w.Grid().Steps()))
			if frameErr = writeWorld(path, w); frameErr != nil {
				stop()
				return
			}
			res.frames++
		}
	}

	start := time.Now()
	n, runErr := world.Run(ctx, onStep)
	res.steps = n
	res.elapsed = time.Since(start)
	if frameErr != nil {
		return res, fmt.Errorf("write frame: %w", frameErr)
	}
	if errors.Is(runErr, context.DeadlineExceeded) {
		return res, fmt.Errorf("generation timed out after %s and %d steps: %w", opts.timeout, n, runErr)
	}
	if runErr != nil && !errors.Is(runErr, wave.ErrContradiction) {
		return res, runErr
	}
	if err := writeWorld(opts.output, world); err != nil {
		return res, err
	}
	if runErr != nil {
		return res, fmt.Errorf("partial map written to %s: %w", opts.output, runErr)
	}
	return res, nil
}

func writeWorld(path string, w *wavecollapse.World) error {
	size := w.Size()
	img, err := render.Image(w.Cells(), size.W, size.H, w.Palette())
	if err != nil {
		return err
	}
	return render.WriteFile(path, img)
}
