package cli

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ironsheep/hough-lines-mcp/internal/detection"
	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	imgutil "github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

type accumulatorOpts struct {
	pipelineFlags
	kind   string
	output string
	scale  float64
}

func newAccumulatorCmd() *cobra.Command {
	opts := accumulatorOpts{kind: detection.KindRaw, scale: 1}

	cmd := &cobra.Command{
		Use:   "accumulator <image>",
		Short: "Render the Hough accumulator of an image",
		Long: `Render the Hough accumulator of an image as a grayscale picture: angle
index on x, radius index on y, brightest cell = most votes.

Kinds:
  raw       the accumulator itself
  extended  accumulator followed by its radially mirrored copy
  maxima    only the strict local maxima`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccumulator(cmd, args[0], opts)
		},
	}

	opts.register(cmd, false)
	cmd.Flags().StringVar(&opts.kind, "kind", opts.kind, "raw, extended or maxima")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output image file (format from extension)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "scale factor for the output image")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runAccumulator(cmd *cobra.Command, path string, opts accumulatorOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	img, err := imgutil.NewImageCache().Load(path)
	if err != nil {
		return err
	}
	pipeline := configFromContext(ctx).DetectionOptions()
	if err := opts.apply(cmd, &pipeline, img.Bounds()); err != nil {
		return err
	}

	analysis, err := detection.Analyze(img, pipeline, hough.WithLogger(logger))
	if err != nil {
		return err
	}
	grid, err := detection.SelectGrid(analysis.Transform, opts.kind)
	if err != nil {
		return err
	}

	out := imgutil.Scale(detection.RenderGrid(grid), opts.scale)
	if err := imaging.Save(out, opts.output); err != nil {
		return fmt.Errorf("failed to write accumulator: %w", err)
	}
	logger.Info("wrote accumulator", "path", opts.output, "kind", opts.kind,
		"bins", fmt.Sprintf("%dx%d", grid.Width(), grid.Height()), "max_votes", grid.Max())
	return nil
}
