package hough

import (
	"math"
	"testing"
)

func TestNewTrigTables(t *testing.T) {
	const nAng = 12
	tab := newTrigTables(nAng)

	if len(tab.cos) != nAng || len(tab.sin) != nAng {
		t.Fatalf("table lengths = %d/%d, want %d", len(tab.cos), len(tab.sin), nAng)
	}

	for i := 0; i < nAng; i++ {
		angle := float64(i) * math.Pi / nAng
		if math.Abs(tab.cos[i]-math.Cos(angle)) > 1e-15 {
			t.Errorf("cos[%d] = %v, want %v", i, tab.cos[i], math.Cos(angle))
		}
		if math.Abs(tab.sin[i]-math.Sin(angle)) > 1e-15 {
			t.Errorf("sin[%d] = %v, want %v", i, tab.sin[i], math.Sin(angle))
		}
	}

	// Spot checks: 0, 90 and 150 degrees.
	checks := []struct {
		i        int
		cos, sin float64
	}{
		{0, 1, 0},
		{6, 0, 1},
		{10, -math.Sqrt(3) / 2, 0.5},
	}
	for _, c := range checks {
		if math.Abs(tab.cos[c.i]-c.cos) > 1e-12 || math.Abs(tab.sin[c.i]-c.sin) > 1e-12 {
			t.Errorf("index %d: got (%v, %v), want (%v, %v)", c.i, tab.cos[c.i], tab.sin[c.i], c.cos, c.sin)
		}
	}
}
