package hough

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linePoints returns n points evenly spaced along the line (angle, radius)
// relative to ref, extending halfLen on both sides of the foot point, with
// Gaussian jitter of standard deviation sigma added to both coordinates.
func linePoints(ref Point, angle, radius float64, n int, halfLen, sigma float64, rng *rand.Rand) []Point {
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	x0 := ref.X + radius*cosA
	y0 := ref.Y + radius*sinA
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		s := -halfLen + 2*halfLen*float64(i)/float64(n-1)
		pts[i] = Point{X: x0 - s*sinA, Y: y0 + s*cosA}
		if sigma > 0 {
			pts[i].X += rng.NormFloat64() * sigma
			pts[i].Y += rng.NormFloat64() * sigma
		}
	}
	return pts
}

// rotate turns every point by phi around c.
func rotate(pts []Point, c Point, phi float64) []Point {
	cosP, sinP := math.Cos(phi), math.Sin(phi)
	out := make([]Point, len(pts))
	for i, p := range pts {
		dx, dy := p.X-c.X, p.Y-c.Y
		out[i] = Point{X: c.X + dx*cosP - dy*sinP, Y: c.Y + dx*sinP + dy*cosP}
	}
	return out
}

// mustTransform builds a 200x200 transform with default parameters.
func mustTransform(t *testing.T, pts []Point) *Transform {
	t.Helper()
	tr, err := NewFromPoints(pts, 200, 200, DefaultParameters())
	require.NoError(t, err)
	return tr
}

func TestNewFromPoints_InvalidParameters(t *testing.T) {
	tests := []struct {
		name          string
		params        Parameters
		width, height int
	}{
		{"zero angles", Parameters{NAng: 0, NRad: 10}, 100, 100},
		{"negative angles", Parameters{NAng: -4, NRad: 10}, 100, 100},
		{"zero radii", Parameters{NAng: 10, NRad: 0}, 100, 100},
		{"negative radii", Parameters{NAng: 10, NRad: -1}, 100, 100},
		{"zero width", Parameters{NAng: 10, NRad: 10}, 0, 100},
		{"negative height", Parameters{NAng: 10, NRad: 10}, 100, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewFromPoints(nil, tt.width, tt.height, tt.params)
			if !errors.Is(err, ErrInvalidParameters) {
				t.Fatalf("err = %v, want ErrInvalidParameters", err)
			}
			if tr != nil {
				t.Error("expected nil transform on error")
			}
		})
	}
}

func TestNewFromPoints_Geometry(t *testing.T) {
	tr, err := NewFromPoints(nil, 101, 60, Parameters{NAng: 90, NRad: 50})
	require.NoError(t, err)

	// Reference point uses integer division.
	assert.Equal(t, Point{X: 50, Y: 30}, tr.Reference())
	assert.Equal(t, 90, tr.Accumulator().Width())
	assert.Equal(t, 101, tr.Accumulator().Height())
	assert.Equal(t, 180, tr.ExtendedAccumulator().Width())
	assert.Equal(t, 101, tr.ExtendedAccumulator().Height())
	assert.InDelta(t, math.Pi/90, tr.AngleStep(), 1e-15)
	assert.InDelta(t, 0.5*math.Hypot(101, 60)/50, tr.RadiusStep(), 1e-12)

	w, h := tr.Size()
	assert.Equal(t, 101, w)
	assert.Equal(t, 60, h)
}

func TestIndexConversions(t *testing.T) {
	tr, err := NewFromPoints(nil, 100, 100, Parameters{NAng: 180, NRad: 64})
	require.NoError(t, err)

	assert.Equal(t, 0.0, tr.AngleFromIndex(0))
	assert.InDelta(t, math.Pi/2, tr.AngleFromIndex(90), 1e-12)
	assert.Equal(t, 0.0, tr.RadiusFromIndex(64))
	assert.InDelta(t, -64*tr.RadiusStep(), tr.RadiusFromIndex(0), 1e-12)

	for _, ri := range []int{0, 1, 63, 64, 65, 128} {
		assert.InDelta(t, float64(ri), tr.RadiusToIndex(tr.RadiusFromIndex(ri)), 1e-9, "ri=%d", ri)
	}
}

func TestVoteConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pts := make([]Point, 300)
	for i := range pts {
		pts[i] = Point{X: 1 + rng.Float64()*197, Y: 1 + rng.Float64()*197}
	}
	tr := mustTransform(t, pts)
	acc := tr.Accumulator()

	// Every point inside the image plane votes in every column.
	for ai := 0; ai < acc.Width(); ai++ {
		sum := 0.0
		for _, v := range acc.Column(ai) {
			if v < 0 {
				t.Fatalf("negative cell in column %d: %v", ai, v)
			}
			sum += v
		}
		if math.Abs(sum-float64(len(pts))) > 1e-9 {
			t.Fatalf("column %d holds %v votes, want %d", ai, sum, len(pts))
		}
	}
	assert.InDelta(t, float64(len(pts)*acc.Width()), acc.Sum(), 1e-6)
}

func TestVoteConservation_OutOfRange(t *testing.T) {
	// (500, 100) lies far right of a 200x200 plane: it votes only in the
	// columns where its radius stays inside the range.
	pts := []Point{{X: 100, Y: 100}, {X: 500, Y: 100}}
	tr := mustTransform(t, pts)
	acc := tr.Accumulator()
	ref := tr.Reference()

	partial := 0
	for ai := 0; ai < acc.Width(); ai++ {
		want := 0
		for _, p := range pts {
			r := (p.X-ref.X)*math.Cos(tr.AngleFromIndex(ai)) + (p.Y-ref.Y)*math.Sin(tr.AngleFromIndex(ai))
			r0 := int(math.Floor(tr.RadiusToIndex(r)))
			if r0 >= 0 && r0+1 < acc.Height() {
				want++
			}
		}
		if want == 1 {
			partial++
		}
		sum := 0.0
		for _, v := range acc.Column(ai) {
			sum += v
		}
		assert.InDelta(t, float64(want), sum, 1e-9, "column %d", ai)
	}
	if partial == 0 {
		t.Fatal("expected some columns to skip the far point")
	}
	if partial == acc.Width() {
		t.Fatal("expected the far point to vote in some columns")
	}
}

func TestLines_RecoversSyntheticLine(t *testing.T) {
	const n = 100
	tr := mustTransform(t, nil)
	angle := tr.AngleFromIndex(40)
	radius := tr.RadiusFromIndex(155)

	rng := rand.New(rand.NewSource(1))
	pts := linePoints(tr.Reference(), angle, radius, n, 60, 0.1, rng)
	tr = mustTransform(t, pts)

	lines := tr.Lines(n/2, 1)
	require.Len(t, lines, 1)

	got := lines[0]
	assert.InDelta(t, angle, got.Angle, tr.AngleStep())
	assert.InDelta(t, radius, got.Radius, tr.RadiusStep())
	assert.InDelta(t, n, got.Votes, 0.15*n)
	assert.Equal(t, 100.0, got.RefX)
	assert.Equal(t, 100.0, got.RefY)
}

func TestLines_RotationCovariance(t *testing.T) {
	tests := []struct {
		name      string
		angleIdx  int
		rotateIdx int
		wantIdx   int
		flipped   bool
	}{
		{"no wrap", 40, 30, 70, false},
		{"wraps past pi", 240, 30, 14, true},
		{"negative rotation", 20, -60, 216, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustTransform(t, nil)
			dAng := base.AngleStep()
			ref := base.Reference()
			radius := base.RadiusFromIndex(155)

			rng := rand.New(rand.NewSource(3))
			pts := linePoints(ref, base.AngleFromIndex(tt.angleIdx), radius, 80, 50, 0.1, rng)
			pts = rotate(pts, ref, float64(tt.rotateIdx)*dAng)

			lines := mustTransform(t, pts).Lines(40, 1)
			require.Len(t, lines, 1)

			wantRadius := radius
			if tt.flipped {
				wantRadius = -radius
			}
			assert.InDelta(t, float64(tt.wantIdx)*dAng, lines[0].Angle, dAng)
			assert.InDelta(t, wantRadius, lines[0].Radius, base.RadiusStep())
		})
	}
}

func TestLines_TwoLinesRanked(t *testing.T) {
	tr := mustTransform(t, nil)
	ref := tr.Reference()
	strong := linePoints(ref, tr.AngleFromIndex(60), tr.RadiusFromIndex(150), 100, 60, 0, nil)
	weak := linePoints(ref, tr.AngleFromIndex(170), tr.RadiusFromIndex(110), 60, 50, 0, nil)
	tr = mustTransform(t, append(strong, weak...))

	lines := tr.Lines(20, 5)
	require.GreaterOrEqual(t, len(lines), 2)
	assert.InDelta(t, tr.AngleFromIndex(60), lines[0].Angle, tr.AngleStep())
	assert.InDelta(t, tr.AngleFromIndex(170), lines[1].Angle, tr.AngleStep())
	assert.Greater(t, lines[0].Votes, lines[1].Votes)

	for i := 1; i < len(lines); i++ {
		if lines[i].Votes > lines[i-1].Votes {
			t.Errorf("lines not sorted at %d: %d > %d", i, lines[i].Votes, lines[i-1].Votes)
		}
	}

	top := tr.Lines(20, 1)
	require.Len(t, top, 1)
	assert.Equal(t, lines[0], top[0])
}

func TestLines_MaxLinesNonPositive(t *testing.T) {
	tr := mustTransform(t, linePoints(Point{X: 100, Y: 100}, 0.5, 10, 50, 40, 0, nil))

	for _, maxLines := range []int{0, -1} {
		lines := tr.Lines(1, maxLines)
		if lines == nil {
			t.Fatal("Lines returned nil slice")
		}
		assert.Empty(t, lines)
	}
}

func TestLines_ThresholdMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ref := Point{X: 100, Y: 100}
	var pts []Point
	pts = append(pts, linePoints(ref, 0.3, 20, 90, 60, 0.3, rng)...)
	pts = append(pts, linePoints(ref, 1.9, -35, 60, 50, 0.3, rng)...)
	pts = append(pts, linePoints(ref, 2.7, 5, 30, 30, 0.3, rng)...)
	for i := 0; i < 200; i++ {
		pts = append(pts, Point{X: rng.Float64() * 199, Y: rng.Float64() * 199})
	}
	tr := mustTransform(t, pts)

	prev := math.MaxInt
	for minVotes := 0; minVotes <= 120; minVotes += 5 {
		n := len(tr.Lines(minVotes, 10000))
		if n > prev {
			t.Fatalf("minVotes=%d returned %d lines, more than %d at the lower threshold", minVotes, n, prev)
		}
		prev = n
	}
}

func TestLines_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pts := linePoints(Point{X: 100, Y: 100}, 1.1, -20, 120, 70, 0.5, rng)
	tr := mustTransform(t, pts)

	first := tr.Lines(5, 20)
	second := tr.Lines(5, 20)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Lines changed between calls (-first +second):\n%s", diff)
	}

	m1, m2 := tr.Maxima(), tr.Maxima()
	for ai := 0; ai < m1.Width(); ai++ {
		if diff := cmp.Diff(m1.Column(ai), m2.Column(ai)); diff != "" {
			t.Fatalf("maxima column %d changed:\n%s", ai, diff)
		}
	}
}

func TestLines_EmptyInput(t *testing.T) {
	tr := mustTransform(t, nil)

	assert.Equal(t, 0.0, tr.Accumulator().Sum())
	for _, n := range []int{0, 1, 10, 1000} {
		lines := tr.Lines(1, n)
		assert.NotNil(t, lines)
		assert.Empty(t, lines, "maxLines=%d", n)
	}
}

func TestLines_NonMaximaIgnoredAtZeroThreshold(t *testing.T) {
	// Zero-valued cells never become lines, even with a zero threshold.
	tr := mustTransform(t, []Point{{X: 120, Y: 90}})
	maxima := tr.Maxima()
	lines := tr.Lines(0, 100000)
	nonZero := 0
	for ai := 0; ai < maxima.Width(); ai++ {
		for _, v := range maxima.Column(ai) {
			if v > 0 {
				nonZero++
			}
		}
	}
	assert.Len(t, lines, nonZero)
}

func TestNewFromImage_HorizontalLine(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 60))
	for x := 10; x < 90; x++ {
		img.SetGray(x, 40, color.Gray{Y: 255})
	}

	tr, err := NewFromImage(FromGray(img), DefaultParameters())
	require.NoError(t, err)
	assert.Equal(t, Point{X: 50, Y: 30}, tr.Reference())
	assert.InDelta(t, 80*256, tr.Accumulator().Sum(), 1e-6)

	lines := tr.Lines(40, 1)
	require.Len(t, lines, 1)
	assert.InDelta(t, math.Pi/2, lines[0].Angle, tr.AngleStep())
	assert.InDelta(t, 10, lines[0].Radius, tr.RadiusStep())
	assert.InDelta(t, 80, lines[0].Votes, 8)
}

func TestNewFromImage_VerticalLineAtSeam(t *testing.T) {
	// A vertical line has normal angle 0, the first accumulator column. Its
	// peak can only be found through the mirrored seam column.
	img := image.NewGray(image.Rect(0, 0, 100, 60))
	for y := 5; y < 55; y++ {
		img.SetGray(70, y, color.Gray{Y: 255})
	}

	tr, err := NewFromImage(FromGray(img), DefaultParameters())
	require.NoError(t, err)

	lines := tr.Lines(25, 3)
	require.NotEmpty(t, lines)
	assert.InDelta(t, 0, lines[0].Angle, tr.AngleStep()/2)
	assert.InDelta(t, 20, lines[0].Radius, tr.RadiusStep())
	assert.InDelta(t, 50, lines[0].Votes, 8)

	// The same line must not reappear near pi with negated radius.
	for _, l := range lines[1:] {
		if math.Abs(l.Radius+20) < 2*tr.RadiusStep() && l.Angle > math.Pi-2*tr.AngleStep() {
			t.Errorf("duplicate peak across the seam: %v", l)
		}
	}
}

func TestNewFromImage_OffsetBounds(t *testing.T) {
	// Pixel coordinates are taken relative to the image bounds.
	img := image.NewGray(image.Rect(20, 30, 120, 90))
	img.SetGray(20, 30, color.Gray{Y: 1})

	count := 0
	FromGray(img).ForEachForeground(func(u, v int) {
		assert.Equal(t, 0, u)
		assert.Equal(t, 0, v)
		count++
	})
	assert.Equal(t, 1, count)
}
