package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Segment is a labelled line segment to draw on an overlay.
type Segment struct {
	From, To image.Point
	Color    color.Color
	Label    string
}

// Canvas is an RGBA copy of an image that overlays are drawn onto.
type Canvas struct {
	*image.RGBA
}

// NewCanvas copies img into a new RGBA canvas with the same bounds.
func NewCanvas(img image.Image) *Canvas {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return &Canvas{RGBA: rgba}
}

// DrawSegment draws s with the given stroke width and, when s.Label is set,
// labels it at its midpoint.
func (c *Canvas) DrawSegment(s Segment, width int) {
	half := max(width, 1) / 2
	bresenham(s.From, s.To, func(x, y int) {
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				c.setClipped(x+dx, y+dy, s.Color)
			}
		}
	})
	if s.Label != "" {
		mid := s.From.Add(s.To).Div(2)
		c.drawLabel(mid.X+2, mid.Y+2, s.Label, color.White, color.RGBA{0, 0, 0, 180})
	}
}

// MarkPoint draws a small cross centred on p.
func (c *Canvas) MarkPoint(p image.Point, size int, col color.Color) {
	for d := -size; d <= size; d++ {
		c.setClipped(p.X+d, p.Y, col)
		c.setClipped(p.X, p.Y+d, col)
	}
}

func (c *Canvas) setClipped(x, y int, col color.Color) {
	if (image.Point{X: x, Y: y}).In(c.Bounds()) {
		c.Set(x, y, col)
	}
}

func bresenham(from, to image.Point, plot func(x, y int)) {
	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}
	err := dx + dy
	x, y := from.X, from.Y
	for {
		plot(x, y)
		if x == to.X && y == to.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(hex string) (color.Color, error) {
	switch len(hex) {
	case 7:
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, err
		}
		return c, nil
	case 9:
		c, err := colorful.Hex(hex[:7])
		if err != nil {
			return nil, err
		}
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
	default:
		return nil, fmt.Errorf("invalid hex color %q", hex)
	}
}

// drawLabel draws text in a 3x5 pixel font on a filled background. Only
// digits, comma, period and minus are supported; other runes leave a gap.
func (c *Canvas) drawLabel(x, y int, text string, fg, bg color.Color) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
		'.': {"000", "000", "000", "000", "010"},
		'-': {"000", "000", "111", "000", "000"},
	}

	const charWidth, labelHeight = 4, 7
	labelWidth := len(text) * charWidth

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			c.setClipped(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel == '1' {
					c.setClipped(cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
