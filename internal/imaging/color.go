package imaging

import (
	"fmt"
	"image"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorFrequency is a colour and the share of samples that had it.
type ColorFrequency struct {
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"`
}

// SampleHex returns the "#rrggbb" colour at (x, y). Coordinates are in image
// space, so they must lie within img.Bounds().
func SampleHex(img image.Image, x, y int) (string, error) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return "", fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	c, _ := colorful.MakeColor(img.At(x, y))
	return c.Hex(), nil
}

// StrokeColor reports the most frequent colour found at points, ignoring
// points outside the image. It returns "" when no point could be sampled.
//
// Line detection uses it to label each line with the colour of the pixels
// that voted for it.
func StrokeColor(img image.Image, points []image.Point) string {
	freq := Histogram(img, points)
	if len(freq) == 0 {
		return ""
	}
	return freq[0].Hex
}

// Histogram counts the colours at points, most frequent first. Colours are
// quantised to 5 bits per channel so anti-aliasing noise does not split a
// stroke into many entries.
func Histogram(img image.Image, points []image.Point) []ColorFrequency {
	bounds := img.Bounds()
	counts := make(map[colorful.Color]int)
	total := 0
	for _, p := range points {
		if !p.In(bounds) {
			continue
		}
		c, ok := colorful.MakeColor(img.At(p.X, p.Y))
		if !ok {
			continue // fully transparent
		}
		r, g, b := c.RGB255()
		counts[colorful.Color{
			R: float64(r&0xF8) / 255,
			G: float64(g&0xF8) / 255,
			B: float64(b&0xF8) / 255,
		}]++
		total++
	}
	if total == 0 {
		return nil
	}

	result := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		result = append(result, ColorFrequency{
			Hex:        c.Hex(),
			Percentage: float64(n) * 100 / float64(total),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Percentage != result[j].Percentage {
			return result[i].Percentage > result[j].Percentage
		}
		return result[i].Hex < result[j].Hex
	})
	return result
}

// Palette returns n visually distinct colours, walking the hue circle at
// full saturation. Overlays use it to tell lines apart.
func Palette(n int) []colorful.Color {
	colors := make([]colorful.Color, n)
	for i := range colors {
		colors[i] = colorful.Hsv(float64(i)*360/float64(max(n, 1)), 0.9, 0.95)
	}
	return colors
}
