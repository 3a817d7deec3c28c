package hough

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// Point is a 2D input coordinate in image space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BinaryImage is a source of foreground pixels, typically an edge map.
type BinaryImage interface {
	// Size returns the width and height of the image plane.
	Size() (width, height int)

	// ForEachForeground calls fn once for every foreground pixel.
	ForEachForeground(fn func(u, v int))
}

// Option configures a Transform.
type Option func(*Transform)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(t *Transform) {
		if l != nil {
			t.logger = l
		}
	}
}

// Transform holds the accumulator of a Hough transform for lines over one
// image plane. The accumulator is filled at construction and never changes
// afterwards.
type Transform struct {
	params        Parameters
	width, height int
	xRef, yRef    float64 // reference point, integer valued
	dAng          float64 // angular step
	dRad          float64 // radial step
	cRad          int     // radius index of r == 0
	trig          trigTables
	acc           *Grid
	logger        *log.Logger
}

// NewFromPoints builds a transform from a pre-collected point set.
// Width and height only determine the reference point (the image center)
// and the radial range.
func NewFromPoints(points []Point, width, height int, p Parameters, opts ...Option) (*Transform, error) {
	t, err := newTransform(width, height, p, opts)
	if err != nil {
		return nil, err
	}
	for _, pt := range points {
		t.vote(pt.X, pt.Y)
	}
	t.logger.Debug("accumulator filled", "points", len(points), "votes", t.acc.Sum())
	return t, nil
}

// NewFromImage builds a transform from the foreground pixels of a binary
// image.
func NewFromImage(img BinaryImage, p Parameters, opts ...Option) (*Transform, error) {
	width, height := img.Size()
	t, err := newTransform(width, height, p, opts)
	if err != nil {
		return nil, err
	}
	n := 0
	img.ForEachForeground(func(u, v int) {
		t.vote(float64(u), float64(v))
		n++
	})
	t.logger.Debug("accumulator filled", "points", n, "votes", t.acc.Sum())
	return t, nil
}

func newTransform(width, height int, p Parameters, opts []Option) (*Transform, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidParameters, width, height)
	}
	t := &Transform{
		params: p,
		width:  width,
		height: height,
		xRef:   float64(width / 2),
		yRef:   float64(height / 2),
		dAng:   math.Pi / float64(p.NAng),
		dRad:   0.5 * math.Hypot(float64(width), float64(height)) / float64(p.NRad),
		cRad:   p.NRad,
		trig:   newTrigTables(p.NAng),
		acc:    newGrid(p.NAng, p.radialBins()),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// vote distributes one unit of vote mass for the point (u, v) over every
// angle column whose radius falls inside the radial range.
func (t *Transform) vote(u, v float64) {
	x := u - t.xRef
	y := v - t.yRef
	for ai := 0; ai < t.params.NAng; ai++ {
		r := x*t.trig.cos[ai] + y*t.trig.sin[ai]
		ri := t.RadiusToIndex(r)
		r0 := int(math.Floor(ri))
		r1 := r0 + 1
		if r0 < 0 || r1 >= t.acc.height {
			continue
		}
		alpha := ri - float64(r0)
		t.acc.add(ai, r0, 1-alpha)
		t.acc.add(ai, r1, alpha)
	}
}

// Lines returns up to maxLines of the strongest lines with at least minVotes
// votes, ordered by descending vote count. Only local maxima of the
// accumulator are reported. The result is never nil.
func (t *Transform) Lines(minVotes, maxLines int) []Line {
	lines := make([]Line, 0)
	if maxLines <= 0 {
		return lines
	}

	maxima := t.Maxima()
	for ai := 0; ai < maxima.width; ai++ {
		for ri := 0; ri < maxima.height; ri++ {
			v := maxima.At(ai, ri)
			if v <= 0 || v < float64(minVotes) {
				continue
			}
			lines = append(lines, Line{
				Angle:  t.AngleFromIndex(ai),
				Radius: t.RadiusFromIndex(ri),
				RefX:   t.xRef,
				RefY:   t.yRef,
				Votes:  int(math.Round(v)),
			})
		}
	}

	sortByVotes(lines)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// Accumulator returns the raw vote grid (NAng x 2*NRad+1).
func (t *Transform) Accumulator() *Grid {
	return t.acc
}

// ExtendedAccumulator returns a freshly built 2*NAng x 2*NRad+1 grid: the
// accumulator followed by its radially mirrored copy.
func (t *Transform) ExtendedAccumulator() *Grid {
	return extend(t.acc)
}

// Maxima returns a freshly built accumulator-shaped grid holding only the
// strict local maxima of the extended accumulator.
func (t *Transform) Maxima() *Grid {
	maxima, count := localMaxima(t.ExtendedAccumulator(), t.params.NAng)
	t.logger.Debug("found local maxima", "count", count)
	return maxima
}

// AngleFromIndex returns the angle in radians of angle index ai.
func (t *Transform) AngleFromIndex(ai int) float64 {
	return float64(ai) * t.dAng
}

// RadiusFromIndex returns the signed radius of radius index ri, relative to
// the reference point.
func (t *Transform) RadiusFromIndex(ri int) float64 {
	return float64(ri-t.cRad) * t.dRad
}

// RadiusToIndex returns the continuous radius index of radius r.
func (t *Transform) RadiusToIndex(r float64) float64 {
	return float64(t.cRad) + r/t.dRad
}

// AngleStep returns the width of one angular bin in radians.
func (t *Transform) AngleStep() float64 { return t.dAng }

// RadiusStep returns the width of one radial bin in pixels.
func (t *Transform) RadiusStep() float64 { return t.dRad }

// Reference returns the reference point radii are measured from.
func (t *Transform) Reference() Point {
	return Point{X: t.xRef, Y: t.yRef}
}

// Params returns the resolution the transform was built with.
func (t *Transform) Params() Parameters { return t.params }

// Size returns the width and height of the image plane.
func (t *Transform) Size() (width, height int) { return t.width, t.height }

type grayImage struct {
	img *image.Gray
}

// FromGray adapts a grayscale image to BinaryImage. Every non-zero pixel is
// foreground.
func FromGray(img *image.Gray) BinaryImage {
	return grayImage{img: img}
}

func (g grayImage) Size() (int, int) {
	b := g.img.Bounds()
	return b.Dx(), b.Dy()
}

func (g grayImage) ForEachForeground(fn func(u, v int)) {
	b := g.img.Bounds()
	for v := 0; v < b.Dy(); v++ {
		for u := 0; u < b.Dx(); u++ {
			if g.img.GrayAt(b.Min.X+u, b.Min.Y+v).Y != 0 {
				fn(u, v)
			}
		}
	}
}
