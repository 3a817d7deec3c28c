package detection

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

// Point is an integer pixel position in image coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Options controls the image -> mask -> lines pipeline.
type Options struct {
	Params hough.Parameters
	Edges  imaging.EdgeOptions

	// MinVotes is the smallest accumulator peak reported as a line.
	MinVotes int

	// MaxLines caps the number of lines returned, strongest first.
	MaxLines int

	// Tolerance is the distance in pixels within which a mask pixel counts
	// as supporting a line.
	Tolerance float64
}

// DefaultOptions returns the default transform resolution, Canny edges and
// at most ten lines with at least ten votes.
func DefaultOptions() Options {
	return Options{
		Params:    hough.DefaultParameters(),
		Edges:     imaging.DefaultEdgeOptions(),
		MinVotes:  10,
		MaxLines:  10,
		Tolerance: 1.5,
	}
}

// Segment is the part of a detected line actually covered by mask pixels.
type Segment struct {
	Start     Point   `json:"start"`
	End       Point   `json:"end"`
	Length    float64 `json:"length"`
	Support   int     `json:"support"`
	Thickness int     `json:"thickness_approx"`
}

// DetectedLine is a Hough line described in image terms.
type DetectedLine struct {
	Rank         int         `json:"rank"`
	AngleRadians float64     `json:"angle_radians"`
	AngleDegrees float64     `json:"angle_degrees"`
	Radius       float64     `json:"radius"`
	Reference    hough.Point `json:"reference"`
	Votes        int         `json:"vote_count"`

	// Start and End are where the infinite line leaves the analysed area.
	Start Point `json:"start"`
	End   Point `json:"end"`

	Segment *Segment `json:"segment,omitempty"`
	Color   string   `json:"color,omitempty"`
}

// LinesResult contains detected lines
type LinesResult struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Origin     Point          `json:"origin"`
	Reference  hough.Point    `json:"reference"`
	EdgePixels int            `json:"edge_pixels"`
	Lines      []DetectedLine `json:"lines"`
	Count      int            `json:"count"`
}

// DetectLines builds an edge mask from img, runs the Hough transform on it
// and describes the strongest lines.
func DetectLines(img image.Image, opts Options, houghOpts ...hough.Option) (*LinesResult, error) {
	a, err := Analyze(img, opts, houghOpts...)
	if err != nil {
		return nil, err
	}
	return a.Result(img, opts), nil
}

// Analysis is the mask and filled transform for one image.
type Analysis struct {
	Mask      *imaging.Mask
	Transform *hough.Transform

	// Origin is the image position of mask pixel (0, 0).
	Origin image.Point
}

// Analyze builds the edge mask of img according to opts.Edges and fills a
// transform from it.
func Analyze(img image.Image, opts Options, houghOpts ...hough.Option) (*Analysis, error) {
	mask, err := imaging.BuildMask(img, opts.Edges)
	if err != nil {
		return nil, fmt.Errorf("failed to build edge mask: %w", err)
	}

	t, err := hough.NewFromImage(mask, opts.Params, houghOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to run transform: %w", err)
	}

	origin := img.Bounds().Min
	if opts.Edges.Region != nil {
		origin = opts.Edges.Region.Intersect(img.Bounds()).Min
	}
	return &Analysis{Mask: mask, Transform: t, Origin: origin}, nil
}

// Result extracts lines and describes them, sampling stroke colours from img.
func (a *Analysis) Result(img image.Image, opts Options) *LinesResult {
	width, height := a.Transform.Size()
	lines := a.Transform.Lines(opts.MinVotes, opts.MaxLines)
	described := DescribeLines(lines, width, height, a.Origin)

	for i := range described {
		support := a.support(lines[i], opts.Tolerance)
		if len(support) == 0 {
			continue
		}
		described[i].Segment = a.segment(lines[i], support)
		described[i].Color = imaging.StrokeColor(img, support)
	}

	ref := a.Transform.Reference()
	return &LinesResult{
		Width:      width,
		Height:     height,
		Origin:     Point{X: a.Origin.X, Y: a.Origin.Y},
		Reference:  hough.Point{X: ref.X + float64(a.Origin.X), Y: ref.Y + float64(a.Origin.Y)},
		EdgePixels: a.Mask.Count(),
		Lines:      described,
		Count:      len(described),
	}
}

// DescribeLines converts transform lines of a width x height plane into
// image-space descriptions. origin is added to every position so the line
// equations hold in image coordinates.
func DescribeLines(lines []hough.Line, width, height int, origin image.Point) []DetectedLine {
	ox, oy := float64(origin.X), float64(origin.Y)
	diag := math.Hypot(float64(width), float64(height))

	result := make([]DetectedLine, 0, len(lines))
	for i, l := range lines {
		d := DetectedLine{
			Rank:         i + 1,
			AngleRadians: l.Angle,
			AngleDegrees: math.Round(l.AngleDegrees()*100) / 100,
			Radius:       l.Radius,
			Reference:    hough.Point{X: l.RefX + ox, Y: l.RefY + oy},
			Votes:        l.Votes,
		}
		p0, p1 := l.Endpoints(diag)
		if a, b, ok := clipToPlane(p0, p1, width, height); ok {
			d.Start = Point{X: int(math.Round(a.X)) + origin.X, Y: int(math.Round(a.Y)) + origin.Y}
			d.End = Point{X: int(math.Round(b.X)) + origin.X, Y: int(math.Round(b.Y)) + origin.Y}
		}
		result = append(result, d)
	}
	return result
}

// support returns the image positions of mask pixels within tol of l.
func (a *Analysis) support(l hough.Line, tol float64) []image.Point {
	var pts []image.Point
	a.Mask.ForEachForeground(func(u, v int) {
		if math.Abs(l.Distance(float64(u), float64(v))) <= tol {
			pts = append(pts, image.Pt(u, v).Add(a.Origin))
		}
	})
	return pts
}

// segment finds the outermost supporting pixels along the line direction.
func (a *Analysis) segment(l hough.Line, support []image.Point) *Segment {
	dirX, dirY := -math.Sin(l.Angle), math.Cos(l.Angle)

	start, end := support[0], support[0]
	minT, maxT := math.Inf(1), math.Inf(-1)
	for _, p := range support {
		t := float64(p.X)*dirX + float64(p.Y)*dirY
		if t < minT {
			minT, start = t, p
		}
		if t > maxT {
			maxT, end = t, p
		}
	}

	mid := start.Add(end).Div(2).Sub(a.Origin)
	return &Segment{
		Start:     Point{X: start.X, Y: start.Y},
		End:       Point{X: end.X, Y: end.Y},
		Length:    math.Round(math.Hypot(float64(end.X-start.X), float64(end.Y-start.Y))*10) / 10,
		Support:   len(support),
		Thickness: estimateThickness(a.Mask, mid, l.Angle),
	}
}

// estimateThickness counts mask pixels along the line normal through mid.
func estimateThickness(m *imaging.Mask, mid image.Point, angle float64) int {
	nx, ny := math.Cos(angle), math.Sin(angle)
	thickness := 0
	for d := -10; d <= 10; d++ {
		px := int(math.Round(float64(mid.X) + float64(d)*nx))
		py := int(math.Round(float64(mid.Y) + float64(d)*ny))
		if m.IsSet(px, py) {
			thickness++
		}
	}
	return max(thickness, 1)
}

// clipToPlane clips the segment p0-p1 to [0, width-1] x [0, height-1]
// (Liang-Barsky). ok is false when the segment misses the plane.
func clipToPlane(p0, p1 hough.Point, width, height int) (a, b hough.Point, ok bool) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, p0.X},
		{dx, float64(width-1) - p0.X},
		{-dy, p0.Y},
		{dy, float64(height-1) - p0.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}

	a = hough.Point{X: p0.X + t0*dx, Y: p0.Y + t0*dy}
	b = hough.Point{X: p0.X + t1*dx, Y: p0.Y + t1*dy}
	return a, b, true
}
