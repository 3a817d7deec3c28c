package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Mask is a binary image: each pixel is either foreground or background.
//
// Mask satisfies hough.BinaryImage and is the usual input of a Hough
// transform. Pixel coordinates are 0-based with origin at the top-left,
// regardless of the bounds of the image it was derived from.
type Mask struct {
	width  int
	height int
	pix    []bool
}

// NewMask returns an empty mask of the given size.
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		pix:    make([]bool, width*height),
	}
}

// MaskFromGray marks every non-zero pixel of img as foreground.
func MaskFromGray(img *image.Gray) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if img.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0 {
				m.pix[y*m.width+x] = true
			}
		}
	}
	return m
}

// Size returns the width and height of the mask.
func (m *Mask) Size() (int, int) {
	return m.width, m.height
}

// Set marks (x, y) as foreground or background. Out-of-range coordinates
// are ignored.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.pix[y*m.width+x] = on
}

// IsSet reports whether (x, y) is foreground.
func (m *Mask) IsSet(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.pix[y*m.width+x]
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, on := range m.pix {
		if on {
			n++
		}
	}
	return n
}

// ForEachForeground calls fn for every foreground pixel in row-major order.
func (m *Mask) ForEachForeground(fn func(u, v int)) {
	for v := 0; v < m.height; v++ {
		row := m.pix[v*m.width : (v+1)*m.width]
		for u, on := range row {
			if on {
				fn(u, v)
			}
		}
	}
}

// Image renders the mask as a grayscale image, foreground white.
func (m *Mask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for i, on := range m.pix {
		if on {
			img.Pix[(i/m.width)*img.Stride+i%m.width] = 255
		}
	}
	return img
}

// ThresholdMask binarises img by luminance: pixels at or above level become
// foreground. With invert set the image is inverted first, so dark strokes on
// a light background become foreground.
func ThresholdMask(img image.Image, level uint8, invert bool) *Mask {
	src := img
	if invert {
		src = imaging.Invert(img)
	}
	return MaskFromGray(segment.Threshold(src, level))
}

// Edge detection modes understood by BuildMask.
const (
	EdgeModeCanny     = "canny"
	EdgeModeThreshold = "threshold"
)

// EdgeOptions selects how an image is turned into a binary mask.
type EdgeOptions struct {
	// Mode is EdgeModeCanny (default) or EdgeModeThreshold.
	Mode string `json:"mode" toml:"mode"`

	// Low and High are the Canny hysteresis thresholds (0-255).
	Low  int `json:"low" toml:"low"`
	High int `json:"high" toml:"high"`

	// Level is the luminance cut for threshold mode (0-255).
	Level int `json:"level" toml:"level"`

	// Invert treats dark pixels as foreground in threshold mode.
	Invert bool `json:"invert" toml:"invert"`

	// Region optionally restricts analysis to a sub-rectangle, given in
	// image coordinates. The mask then covers only the region.
	Region *image.Rectangle `json:"-" toml:"-"`
}

// DefaultEdgeOptions returns Canny mode with thresholds 50/150.
func DefaultEdgeOptions() EdgeOptions {
	return EdgeOptions{
		Mode:   EdgeModeCanny,
		Low:    50,
		High:   150,
		Level:  128,
		Invert: true,
	}
}

// BuildMask turns img into a binary mask according to opts.
//
// # Errors
//
//   - Returns error for an unknown mode
//   - Returns error for thresholds outside 0-255 or low > high
//   - Returns error if the region does not overlap the image
func BuildMask(img image.Image, opts EdgeOptions) (*Mask, error) {
	if opts.Region != nil {
		r := opts.Region.Intersect(img.Bounds())
		if r.Empty() {
			return nil, fmt.Errorf("region %v outside image bounds %v", *opts.Region, img.Bounds())
		}
		img = imaging.Crop(img, r)
	}

	switch opts.Mode {
	case "", EdgeModeCanny:
		if opts.Low < 0 || opts.High > 255 || opts.Low > opts.High {
			return nil, fmt.Errorf("invalid canny thresholds %d/%d: need 0 <= low <= high <= 255", opts.Low, opts.High)
		}
		return CannyMask(img, opts.Low, opts.High), nil
	case EdgeModeThreshold:
		if opts.Level < 0 || opts.Level > 255 {
			return nil, fmt.Errorf("invalid threshold level %d: need 0-255", opts.Level)
		}
		return ThresholdMask(img, uint8(opts.Level), opts.Invert), nil
	default:
		return nil, fmt.Errorf("unknown edge mode: %s", opts.Mode)
	}
}
