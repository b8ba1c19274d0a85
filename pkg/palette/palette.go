package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxColors is the number of swatches a paint application exposes
// in its color picker.
const MaxColors = 18

// ErrEmptyPalette is returned when an operation needs at least one color.
var ErrEmptyPalette = errors.New("palette is empty")

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// White is the canvas background. It is never drawn.
var White = Color{255, 255, 255}

// Black is pure black.
var Black = Color{0, 0, 0}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// IsWhite returns true if the color is the canvas background.
func (c Color) IsWhite() bool {
	return c == White
}

// Hex returns the "#rrggbb" notation of the color.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// FromColor converts any color.Color, dropping its alpha channel.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// ParseHex parses a "#rrggbb" or "#rgb" color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

// Distance returns the euclidean distance between two colors
// in the RGB space.
func Distance(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Palette is an ordered list of colors. The position of a color
// is its slot index in the paint application color picker.
type Palette []Color

// Parse returns a Palette from a list of hex colors.
func Parse(values []string) (Palette, error) {
	res := make(Palette, len(values))
	for i, v := range values {
		c, err := ParseHex(v)
		if err != nil {
			return nil, err
		}
		res[i] = c
	}
	return res, nil
}

// Index returns the slot index of a color or -1 when the color
// is not in the palette.
func (p Palette) Index(c Color) int {
	for i, x := range p {
		if x == c {
			return i
		}
	}
	return -1
}

// Contains returns true if the color is in the palette.
func (p Palette) Contains(c Color) bool {
	return p.Index(c) >= 0
}

// Nearest returns the palette color closest to c. When several
// colors are at the same distance, the first one wins.
// It must not be called on an empty palette.
func (p Palette) Nearest(c Color) Color {
	res := p[0]
	best := Distance(c, res)
	for _, x := range p[1:] {
		if d := Distance(c, x); d < best {
			best = d
			res = x
		}
	}
	return res
}

// Hex returns the hex notation of every color.
func (p Palette) Hex() []string {
	res := make([]string, len(p))
	for i, c := range p {
		res[i] = c.Hex()
	}
	return res
}

// ColorPalette returns the palette as a color.Palette so it can
// back an image.Paletted.
func (p Palette) ColorPalette() color.Palette {
	res := make(color.Palette, len(p))
	for i, c := range p {
		res[i] = c
	}
	return res
}

// Default is the 18 colors palette of the drawing target, in
// swatch order.
var Default = Palette{
	{0, 0, 0},
	{102, 102, 102},
	{0, 80, 205},
	{255, 255, 255},
	{170, 170, 170},
	{38, 201, 255},
	{1, 116, 32},
	{153, 0, 0},
	{150, 65, 18},
	{17, 176, 60},
	{255, 0, 19},
	{255, 120, 41},
	{176, 112, 28},
	{153, 0, 78},
	{203, 90, 87},
	{255, 193, 38},
	{255, 0, 143},
	{254, 175, 168},
}
