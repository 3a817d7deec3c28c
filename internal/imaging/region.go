package imaging

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// NamedRegion returns the rectangle for a named part of bounds.
//
// Supported names: top-left, top-right, bottom-left, bottom-right, top-half,
// bottom-half, left-half, right-half, center (the middle 50%).
func NamedRegion(bounds image.Rectangle, name string) (image.Rectangle, error) {
	w, h := bounds.Dx(), bounds.Dy()
	midX, midY := w/2, h/2

	var r image.Rectangle
	switch name {
	case "top-left":
		r = image.Rect(0, 0, midX, midY)
	case "top-right":
		r = image.Rect(midX, 0, w, midY)
	case "bottom-left":
		r = image.Rect(0, midY, midX, h)
	case "bottom-right":
		r = image.Rect(midX, midY, w, h)
	case "top-half":
		r = image.Rect(0, 0, w, midY)
	case "bottom-half":
		r = image.Rect(0, midY, w, h)
	case "left-half":
		r = image.Rect(0, 0, midX, h)
	case "right-half":
		r = image.Rect(midX, 0, w, h)
	case "center":
		qW, qH := w/4, h/4
		r = image.Rect(qW, qH, w-qW, h-qH)
	default:
		return image.Rectangle{}, fmt.Errorf("unknown region: %s", name)
	}
	return r.Add(bounds.Min), nil
}

// ParseRegion accepts either a region name (see NamedRegion) or explicit
// corners "x1,y1,x2,y2" where (x1,y1) is inclusive and (x2,y2) exclusive.
// The region must lie within bounds.
func ParseRegion(bounds image.Rectangle, text string) (image.Rectangle, error) {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, ",") {
		return NamedRegion(bounds, text)
	}

	parts := strings.Split(text, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: want x1,y1,x2,y2", text)
	}
	var c [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid region %q: %w", text, err)
		}
		c[i] = v
	}
	return CheckRegion(bounds, c[0], c[1], c[2], c[3])
}

// CheckRegion validates explicit corners against bounds.
func CheckRegion(bounds image.Rectangle, x1, y1, x2, y2 int) (image.Rectangle, error) {
	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return image.Rectangle{}, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return image.Rectangle{}, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return image.Rect(x1, y1, x2, y2), nil
}

// Scale resizes img by factor. Factors above one use nearest-neighbour so
// accumulator cells stay crisp; smaller factors use Lanczos. A factor of one
// or less than or equal to zero returns img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))

	filter := imaging.Lanczos
	if factor > 1 {
		filter = imaging.NearestNeighbor
	}
	return imaging.Resize(img, w, h, filter)
}
