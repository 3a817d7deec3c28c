package hough

import (
	"fmt"
	"math"
	"sort"
)

// Line is a straight line in Hesse normal form relative to a reference
// point:
//
//	(x - RefX)*cos(Angle) + (y - RefY)*sin(Angle) = Radius
//
// Lines are produced by Transform.Lines and are plain values.
type Line struct {
	// Angle of the line's normal vector in radians, in [0, pi).
	Angle float64 `json:"angle"`

	// Radius is the signed distance from the reference point to the line.
	Radius float64 `json:"radius"`

	// RefX and RefY locate the reference point.
	RefX float64 `json:"reference_x"`
	RefY float64 `json:"reference_y"`

	// Votes is the accumulator value at the line's peak, rounded.
	Votes int `json:"vote_count"`
}

// AngleDegrees returns the normal angle in degrees.
func (l Line) AngleDegrees() float64 {
	return l.Angle * 180 / math.Pi
}

// Distance returns the signed distance of (x, y) from the line. Points on
// the side the normal vector points to have positive distance.
func (l Line) Distance(x, y float64) float64 {
	return (x-l.RefX)*math.Cos(l.Angle) + (y-l.RefY)*math.Sin(l.Angle) - l.Radius
}

// ClosestPoint returns the point on the line nearest to (x, y).
func (l Line) ClosestPoint(x, y float64) Point {
	d := l.Distance(x, y)
	return Point{
		X: x - d*math.Cos(l.Angle),
		Y: y - d*math.Sin(l.Angle),
	}
}

// Endpoints returns the two points at distance length on either side of the
// line point closest to the reference point. With length set to the image
// diagonal the segment spans the whole image.
func (l Line) Endpoints(length float64) (Point, Point) {
	dx := math.Cos(l.Angle)
	dy := math.Sin(l.Angle)
	x0 := l.RefX + l.Radius*dx
	y0 := l.RefY + l.Radius*dy
	return Point{X: x0 + dy*length, Y: y0 - dx*length},
		Point{X: x0 - dy*length, Y: y0 + dx*length}
}

func (l Line) String() string {
	return fmt.Sprintf("Line <angle = %.3f, radius = %.3f, xRef = %.3f, yRef = %.3f, count = %d>",
		l.Angle, l.Radius, l.RefX, l.RefY, l.Votes)
}

// sortByVotes orders lines strongest first. Equal counts keep their scan
// order.
func sortByVotes(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Votes > lines[j].Votes
	})
}
