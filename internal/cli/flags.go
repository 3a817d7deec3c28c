package cli

import (
	"image"

	"github.com/spf13/cobra"

	"github.com/ironsheep/hough-lines-mcp/internal/detection"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

// pipelineFlags are command-line overrides of the configuration. Only flags
// the user actually set replace configured values.
type pipelineFlags struct {
	mode     string
	low      int
	high     int
	level    int
	invert   bool
	region   string
	nAng     int
	nRad     int
	minVotes int
	maxLines int
}

func (f *pipelineFlags) register(cmd *cobra.Command, withLines bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.mode, "mode", "", "edge mode: canny or threshold")
	fs.IntVar(&f.low, "low", 0, "canny low threshold (0-255)")
	fs.IntVar(&f.high, "high", 0, "canny high threshold (0-255)")
	fs.IntVar(&f.level, "level", 0, "threshold mode luminance cut (0-255)")
	fs.BoolVar(&f.invert, "invert", false, "threshold mode: dark pixels are foreground")
	fs.StringVar(&f.region, "region", "", `area to analyse: "x1,y1,x2,y2" or a name such as top-left`)
	fs.IntVar(&f.nAng, "n-ang", 0, "angle bins over [0, pi)")
	fs.IntVar(&f.nRad, "n-rad", 0, "radius bins per sign")
	if withLines {
		fs.IntVar(&f.minVotes, "min-votes", 0, "minimum votes per line")
		fs.IntVar(&f.maxLines, "max-lines", 0, "maximum number of lines")
	}
}

// apply overlays the changed flags on opts. bounds are the image bounds used
// to resolve --region.
func (f *pipelineFlags) apply(cmd *cobra.Command, opts *detection.Options, bounds image.Rectangle) error {
	fs := cmd.Flags()
	if fs.Changed("mode") {
		opts.Edges.Mode = f.mode
	}
	if fs.Changed("low") {
		opts.Edges.Low = f.low
	}
	if fs.Changed("high") {
		opts.Edges.High = f.high
	}
	if fs.Changed("level") {
		opts.Edges.Level = f.level
	}
	if fs.Changed("invert") {
		opts.Edges.Invert = f.invert
	}
	if fs.Changed("n-ang") {
		opts.Params.NAng = f.nAng
	}
	if fs.Changed("n-rad") {
		opts.Params.NRad = f.nRad
	}
	if fs.Changed("min-votes") {
		opts.MinVotes = f.minVotes
	}
	if fs.Changed("max-lines") {
		opts.MaxLines = f.maxLines
	}
	if f.region != "" {
		r, err := imaging.ParseRegion(bounds, f.region)
		if err != nil {
			return err
		}
		opts.Edges.Region = &r
	}
	return nil
}
