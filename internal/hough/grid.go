package hough

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid is a dense rectangular array of vote values indexed by
// (angle index, radius index). Storage is one contiguous buffer laid out
// column by column: all radius bins of angle 0, then angle 1, and so on.
//
// Grids handed out by a Transform are read-only; only this package mutates
// them.
type Grid struct {
	width  int // angular size
	height int // radial size
	data   []float64
}

func newGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		data:   make([]float64, width*height),
	}
}

// Width returns the number of angle columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of radius bins per column.
func (g *Grid) Height() int { return g.height }

// At returns the value at angle index ai and radius index ri.
// It panics if either index is out of range.
func (g *Grid) At(ai, ri int) float64 {
	return g.data[g.offset(ai, ri)]
}

// Column returns a copy of the radius bins of angle column ai.
func (g *Grid) Column(ai int) []float64 {
	start := g.offset(ai, 0)
	col := make([]float64, g.height)
	copy(col, g.data[start:start+g.height])
	return col
}

// Sum returns the total vote mass held in the grid.
func (g *Grid) Sum() float64 {
	return floats.Sum(g.data)
}

// Max returns the largest cell value.
func (g *Grid) Max() float64 {
	return floats.Max(g.data)
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := newGrid(g.width, g.height)
	copy(c.data, g.data)
	return c
}

func (g *Grid) set(ai, ri int, v float64) {
	g.data[g.offset(ai, ri)] = v
}

func (g *Grid) add(ai, ri int, v float64) {
	g.data[g.offset(ai, ri)] += v
}

func (g *Grid) offset(ai, ri int) int {
	if ai < 0 || ai >= g.width || ri < 0 || ri >= g.height {
		panic(fmt.Sprintf("hough: grid index (%d,%d) out of range %dx%d", ai, ri, g.width, g.height))
	}
	return ai*g.height + ri
}
