package detection

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

// Accumulator views understood by SelectGrid.
const (
	KindRaw      = "raw"
	KindExtended = "extended"
	KindMaxima   = "maxima"
)

// SelectGrid returns the accumulator view named by kind.
func SelectGrid(t *hough.Transform, kind string) (*hough.Grid, error) {
	switch kind {
	case "", KindRaw:
		return t.Accumulator(), nil
	case KindExtended:
		return t.ExtendedAccumulator(), nil
	case KindMaxima:
		return t.Maxima(), nil
	default:
		return nil, fmt.Errorf("unknown accumulator kind: %s", kind)
	}
}

// RenderGrid draws g as a grayscale image with angle index on x and radius
// index on y, scaled so the largest cell is white. Negative cells and an
// all-zero grid render black.
func RenderGrid(g *hough.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width(), g.Height()))
	peak := g.Max()
	if peak <= 0 {
		return img
	}
	for ai := 0; ai < g.Width(); ai++ {
		for ri := 0; ri < g.Height(); ri++ {
			v := g.At(ai, ri)
			if v <= 0 {
				continue
			}
			img.SetGray(ai, ri, color.Gray{Y: uint8(v/peak*255 + 0.5)})
		}
	}
	return img
}

// OverlayOptions controls DrawOverlay.
type OverlayOptions struct {
	// StrokeWidth of the drawn lines in pixels.
	StrokeWidth int

	// ShowSegments draws the supported segment instead of the full line
	// when one was found.
	ShowSegments bool

	// ReferenceColor marks the reference point; nil hides it.
	ReferenceColor color.Color
}

// DefaultOverlayOptions draws full lines two pixels wide with a white
// reference marker.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{StrokeWidth: 2, ReferenceColor: color.White}
}

// DrawOverlay draws result's lines over a copy of img, one palette colour
// per rank, each labelled with its rank.
func DrawOverlay(img image.Image, result *LinesResult, opts OverlayOptions) *image.RGBA {
	canvas := imaging.NewCanvas(img)
	palette := imaging.Palette(len(result.Lines))

	for i, l := range result.Lines {
		from, to := l.Start, l.End
		if opts.ShowSegments && l.Segment != nil {
			from, to = l.Segment.Start, l.Segment.End
		}
		canvas.DrawSegment(imaging.Segment{
			From:  image.Pt(from.X, from.Y),
			To:    image.Pt(to.X, to.Y),
			Color: palette[i],
			Label: strconv.Itoa(l.Rank),
		}, opts.StrokeWidth)
	}

	if opts.ReferenceColor != nil {
		ref := image.Pt(int(result.Reference.X), int(result.Reference.Y))
		canvas.MarkPoint(ref, 4, opts.ReferenceColor)
	}
	return canvas.RGBA
}
