package hough

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid_Layout(t *testing.T) {
	g := newGrid(3, 4)
	g.set(2, 1, 1.5)
	g.add(2, 1, 0.5)
	g.add(0, 3, 4)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 4, g.Height())
	assert.Equal(t, 2.0, g.At(2, 1))
	assert.Equal(t, 4.0, g.At(0, 3))
	assert.Equal(t, 2.0, g.data[2*4+1])
	assert.Equal(t, 6.0, g.Sum())
	assert.Equal(t, 4.0, g.Max())
}

func TestGrid_ColumnIsCopy(t *testing.T) {
	g := newGrid(2, 3)
	g.set(1, 2, 7)

	col := g.Column(1)
	assert.Equal(t, []float64{0, 0, 7}, col)

	col[2] = 99
	assert.Equal(t, 7.0, g.At(1, 2))
}

func TestGrid_Clone(t *testing.T) {
	g := newGrid(2, 2)
	g.set(0, 1, 3)
	c := g.Clone()
	g.set(0, 1, 5)

	assert.Equal(t, 3.0, c.At(0, 1))
	assert.Equal(t, 5.0, g.At(0, 1))
}

func TestGrid_OutOfRangePanics(t *testing.T) {
	g := newGrid(2, 3)
	for _, idx := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 3}} {
		assert.Panics(t, func() { g.At(idx[0], idx[1]) }, "index %v", idx)
	}
}
