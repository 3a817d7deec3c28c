package imaging

import (
	"image"
	"image/color"
	"testing"
)

// solidImage returns an RGBA image filled with c.
func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// splitImage is black left of splitX and white from splitX on.
func splitImage(width, height, splitX int) *image.RGBA {
	img := solidImage(width, height, color.White)
	for y := 0; y < height; y++ {
		for x := 0; x < splitX; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestCannyMask_UniformImage(t *testing.T) {
	m := CannyMask(solidImage(50, 50, color.RGBA{128, 128, 128, 255}), 50, 150)

	w, h := m.Size()
	if w != 50 || h != 50 {
		t.Errorf("size: got %dx%d, want 50x50", w, h)
	}
	if m.Count() != 0 {
		t.Errorf("uniform image produced %d edge pixels", m.Count())
	}
}

func TestCannyMask_VerticalEdge(t *testing.T) {
	m := CannyMask(splitImage(100, 60, 50), 50, 150)

	if m.Count() == 0 {
		t.Fatal("no edges detected")
	}

	// Every edge pixel must be near the step and every interior row must
	// have one.
	m.ForEachForeground(func(u, v int) {
		if u < 47 || u > 52 {
			t.Errorf("edge pixel (%d,%d) far from step at x=50", u, v)
		}
	})
	for y := 2; y < 58; y++ {
		found := false
		for x := 47; x <= 52; x++ {
			if m.IsSet(x, y) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("row %d has no edge near x=50", y)
		}
	}
}

func TestCannyMask_ThresholdsOrderEdgeCount(t *testing.T) {
	img := splitImage(60, 60, 30)
	loose := CannyMask(img, 10, 50).Count()
	strict := CannyMask(img, 250, 255).Count()
	if strict > loose {
		t.Errorf("stricter thresholds found more edges: %d > %d", strict, loose)
	}
}

func TestCannyMask_TinyImage(t *testing.T) {
	m := CannyMask(solidImage(2, 2, color.White), 50, 150)
	if m.Count() != 0 {
		t.Errorf("2x2 image produced %d edge pixels", m.Count())
	}
}

func TestGaussianBlur_PreservesUniform(t *testing.T) {
	p := newPlane(10, 10)
	for i := range p.v {
		p.v[i] = 0.5
	}
	blurred := gaussianBlur(p)
	for i, v := range blurred.v {
		if v < 0.4999 || v > 0.5001 {
			t.Fatalf("pixel %d: got %f, want 0.5", i, v)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}
