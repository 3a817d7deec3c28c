package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
)

// CannyMask performs Canny-style edge detection and returns the edge pixels
// as a binary mask, ready to be fed into a Hough transform.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - thresholdLow: Gradient magnitudes below this (0-255 scale) are discarded.
//   - thresholdHigh: Gradient magnitudes above this are always kept.
//
// # Algorithm
//
//  1. Grayscale conversion (bild/effect)
//  2. 5x5 Gaussian blur to reduce noise
//  3. Sobel gradients: magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//  4. Non-maximum suppression along the gradient direction, thinning edges
//     to one pixel so each edge point casts a single set of votes
//  5. Hysteresis: strong pixels are kept, weak pixels only next to strong ones
//
// Recommended starting points:
//   - Clean diagrams: thresholdLow=50, thresholdHigh=150
//   - Photographs: thresholdLow=100, thresholdHigh=200
func CannyMask(img image.Image, thresholdLow, thresholdHigh int) *Mask {
	gray := effect.Grayscale(img)
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()

	lum := newPlane(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lum.set(x, y, float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)/255.0)
		}
	}

	blurred := gaussianBlur(lum)
	magnitude, direction := sobel(blurred)
	suppressed := suppressNonMaxima(magnitude, direction)
	return hysteresis(suppressed, float64(thresholdLow)/255.0, float64(thresholdHigh)/255.0)
}

// plane is a single-channel float image.
type plane struct {
	width, height int
	v             []float64
}

func newPlane(width, height int) *plane {
	return &plane{width: width, height: height, v: make([]float64, width*height)}
}

func (p *plane) at(x, y int) float64 { return p.v[y*p.width+x] }

func (p *plane) set(x, y int, val float64) { p.v[y*p.width+x] = val }

// clampedAt reads with replicated borders.
func (p *plane) clampedAt(x, y int) float64 {
	return p.at(clamp(x, 0, p.width-1), clamp(y, 0, p.height-1))
}

// gaussianBlur applies the standard 5x5 Gaussian kernel (sigma ≈ 1.4, sum 273).
func gaussianBlur(src *plane) *plane {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	const kernelSum = 273.0

	dst := newPlane(src.width, src.height)
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sum += src.clampedAt(x+kx, y+ky) * kernel[ky+2][kx+2]
				}
			}
			dst.set(x, y, sum/kernelSum)
		}
	}
	return dst
}

func sobel(src *plane) (magnitude, direction *plane) {
	sobelX := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	magnitude = newPlane(src.width, src.height)
	direction = newPlane(src.width, src.height)
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := src.clampedAt(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude.set(x, y, math.Hypot(gx, gy))
			direction.set(x, y, math.Atan2(gy, gx))
		}
	}
	return magnitude, direction
}

// suppressNonMaxima keeps a pixel only if its magnitude is not smaller than
// both neighbours along the quantised gradient direction. Border pixels are
// dropped.
func suppressNonMaxima(magnitude, direction *plane) *plane {
	out := newPlane(magnitude.width, magnitude.height)
	for y := 1; y < magnitude.height-1; y++ {
		for x := 1; x < magnitude.width-1; x++ {
			angle := direction.at(x, y)
			mag := magnitude.at(x, y)

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude.at(x-1, y), magnitude.at(x+1, y)
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude.at(x+1, y-1), magnitude.at(x-1, y+1)
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude.at(x, y-1), magnitude.at(x, y+1)
			default:
				n1, n2 = magnitude.at(x-1, y-1), magnitude.at(x+1, y+1)
			}

			if mag >= n1 && mag >= n2 {
				out.set(x, y, mag)
			}
		}
	}
	return out
}

func hysteresis(suppressed *plane, low, high float64) *Mask {
	m := NewMask(suppressed.width, suppressed.height)
	for y := 0; y < suppressed.height; y++ {
		for x := 0; x < suppressed.width; x++ {
			val := suppressed.at(x, y)
			switch {
			case val <= 0:
			case val >= high:
				m.Set(x, y, true)
			case val >= low && hasStrongNeighbor(suppressed, x, y, high):
				m.Set(x, y, true)
			}
		}
	}
	return m
}

func hasStrongNeighbor(p *plane, x, y int, high float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			if p.clampedAt(x+kx, y+ky) >= high {
				return true
			}
		}
	}
	return false
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
