package hough

import "math"

// trigTables holds cos and sin of every discrete angle i*pi/nAng.
// Voting reads these instead of evaluating trig functions per point.
type trigTables struct {
	cos []float64
	sin []float64
}

func newTrigTables(nAng int) trigTables {
	t := trigTables{
		cos: make([]float64, nAng),
		sin: make([]float64, nAng),
	}
	dAng := math.Pi / float64(nAng)
	for ai := 0; ai < nAng; ai++ {
		angle := dAng * float64(ai)
		t.cos[ai] = math.Cos(angle)
		t.sin[ai] = math.Sin(angle)
	}
	return t
}
