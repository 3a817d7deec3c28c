package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestMask_SetAndQuery(t *testing.T) {
	m := NewMask(4, 3)
	m.Set(1, 2, true)
	m.Set(3, 0, true)
	m.Set(-1, 0, true) // ignored
	m.Set(4, 0, true)  // ignored

	if !m.IsSet(1, 2) || !m.IsSet(3, 0) {
		t.Error("set pixels not reported")
	}
	if m.IsSet(0, 0) || m.IsSet(10, 10) {
		t.Error("unset or out-of-range pixel reported as set")
	}
	if m.Count() != 2 {
		t.Errorf("Count: got %d, want 2", m.Count())
	}

	var got []image.Point
	m.ForEachForeground(func(u, v int) { got = append(got, image.Pt(u, v)) })
	want := []image.Point{{3, 0}, {1, 2}}
	if len(got) != len(want) {
		t.Fatalf("ForEachForeground: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ForEachForeground[%d]: got %v, want %v", i, got[i], want[i])
		}
	}

	m.Set(1, 2, false)
	if m.IsSet(1, 2) {
		t.Error("cleared pixel still set")
	}
}

func TestMask_ImageRoundTrip(t *testing.T) {
	m := NewMask(5, 4)
	m.Set(0, 0, true)
	m.Set(4, 3, true)
	m.Set(2, 1, true)

	back := MaskFromGray(m.Image())
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if back.IsSet(x, y) != m.IsSet(x, y) {
				t.Errorf("pixel (%d,%d) differs after round trip", x, y)
			}
		}
	}
}

func TestMaskFromGray_OffsetBounds(t *testing.T) {
	g := image.NewGray(image.Rect(10, 20, 14, 23))
	g.SetGray(11, 21, color.Gray{Y: 1})

	m := MaskFromGray(g)
	w, h := m.Size()
	if w != 4 || h != 3 {
		t.Fatalf("size: got %dx%d, want 4x3", w, h)
	}
	if !m.IsSet(1, 1) || m.Count() != 1 {
		t.Error("expected only (1,1) set in mask coordinates")
	}
}

func TestThresholdMask(t *testing.T) {
	// Dark stroke in column 2 on white.
	img := solidImage(5, 5, color.White)
	for y := 0; y < 5; y++ {
		img.Set(2, y, color.Black)
	}

	tests := []struct {
		name      string
		invert    bool
		wantCount int
		wantOn    image.Point
	}{
		{"inverted picks dark stroke", true, 5, image.Pt(2, 0)},
		{"plain picks light background", false, 20, image.Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ThresholdMask(img, 128, tt.invert)
			if m.Count() != tt.wantCount {
				t.Errorf("Count: got %d, want %d", m.Count(), tt.wantCount)
			}
			if !m.IsSet(tt.wantOn.X, tt.wantOn.Y) {
				t.Errorf("pixel %v should be foreground", tt.wantOn)
			}
		})
	}
}

func TestBuildMask(t *testing.T) {
	img := splitImage(40, 30, 20)
	outside := image.Rect(100, 100, 120, 120)
	inner := image.Rect(10, 5, 30, 25)

	tests := []struct {
		name     string
		opts     EdgeOptions
		wantErr  bool
		wantSize image.Point
	}{
		{"default canny", DefaultEdgeOptions(), false, image.Pt(40, 30)},
		{"empty mode means canny", EdgeOptions{Low: 50, High: 150}, false, image.Pt(40, 30)},
		{"threshold", EdgeOptions{Mode: EdgeModeThreshold, Level: 128, Invert: true}, false, image.Pt(40, 30)},
		{"region crops mask", EdgeOptions{Mode: EdgeModeThreshold, Level: 128, Region: &inner}, false, image.Pt(20, 20)},
		{"unknown mode", EdgeOptions{Mode: "sobel"}, true, image.Point{}},
		{"low above high", EdgeOptions{Low: 200, High: 100}, true, image.Point{}},
		{"high above 255", EdgeOptions{Low: 0, High: 300}, true, image.Point{}},
		{"negative level", EdgeOptions{Mode: EdgeModeThreshold, Level: -1}, true, image.Point{}},
		{"region outside image", EdgeOptions{Region: &outside, Low: 50, High: 150}, true, image.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := BuildMask(img, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildMask failed: %v", err)
			}
			w, h := m.Size()
			if w != tt.wantSize.X || h != tt.wantSize.Y {
				t.Errorf("size: got %dx%d, want %v", w, h, tt.wantSize)
			}
		})
	}
}

func TestBuildMask_ThresholdRegionContent(t *testing.T) {
	img := splitImage(40, 30, 20) // black left half
	region := image.Rect(10, 0, 30, 30)
	m, err := BuildMask(img, EdgeOptions{Mode: EdgeModeThreshold, Level: 128, Invert: true, Region: &region})
	if err != nil {
		t.Fatalf("BuildMask failed: %v", err)
	}
	// Region columns 0-9 map to image columns 10-19, which are black.
	if m.Count() != 10*30 {
		t.Errorf("Count: got %d, want %d", m.Count(), 10*30)
	}
	if !m.IsSet(0, 0) || m.IsSet(10, 0) {
		t.Error("foreground not aligned with region origin")
	}
}
