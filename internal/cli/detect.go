package cli

import (
	"encoding/json"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ironsheep/hough-lines-mcp/internal/detection"
	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	imgutil "github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

type detectOpts struct {
	pipelineFlags
	overlay  string
	segments bool
}

func newDetectCmd() *cobra.Command {
	var opts detectOpts

	cmd := &cobra.Command{
		Use:   "detect <image>",
		Short: "Detect lines in an image and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args[0], opts)
		},
	}

	opts.register(cmd, true)
	cmd.Flags().StringVarP(&opts.overlay, "overlay", "o", "", "also write the image with detected lines drawn to this file")
	cmd.Flags().BoolVar(&opts.segments, "segments", false, "overlay only the supported segment of each line")
	return cmd
}

func runDetect(cmd *cobra.Command, path string, opts detectOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	img, err := imgutil.NewImageCache().Load(path)
	if err != nil {
		return err
	}
	pipeline := configFromContext(ctx).DetectionOptions()
	if err := opts.apply(cmd, &pipeline, img.Bounds()); err != nil {
		return err
	}

	result, err := detection.DetectLines(img, pipeline, hough.WithLogger(logger))
	if err != nil {
		return err
	}
	prog.done("detected lines", "count", result.Count, "edge_pixels", result.EdgePixels)

	if opts.overlay != "" {
		overlayOpts := detection.DefaultOverlayOptions()
		overlayOpts.ShowSegments = opts.segments
		if err := imaging.Save(detection.DrawOverlay(img, result, overlayOpts), opts.overlay); err != nil {
			return fmt.Errorf("failed to write overlay: %w", err)
		}
		logger.Info("wrote overlay", "path", opts.overlay)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
