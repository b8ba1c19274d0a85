package img

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/drawbot/drawbot/pkg/palette"
)

// Grid is a quantized image. Every pixel holds a palette color.
type Grid struct {
	Width  int
	Height int
	Pix    []palette.Color
}

// NewGrid returns a white grid of the given size.
func NewGrid(w, h int) *Grid {
	g := &Grid{
		Width:  w,
		Height: h,
		Pix:    make([]palette.Color, w*h),
	}
	for i := range g.Pix {
		g.Pix[i] = palette.White
	}
	return g
}

// Bounds returns the grid size.
func (g *Grid) Bounds() (int, int) {
	return g.Width, g.Height
}

// At returns the color at x, y.
func (g *Grid) At(x, y int) palette.Color {
	return g.Pix[y*g.Width+x]
}

// Set sets the color at x, y.
func (g *Grid) Set(x, y int, c palette.Color) {
	g.Pix[y*g.Width+x] = c
}

// Colors returns the number of pixels per color.
func (g *Grid) Colors() map[palette.Color]int {
	res := map[palette.Color]int{}
	for _, c := range g.Pix {
		res[c]++
	}
	return res
}

// Image returns an image of the grid, used for previews.
func (g *Grid) Image() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			m.SetRGBA(x, y, color.RGBA{c.R, c.G, c.B, 0xff})
		}
	}
	return m
}

// Paletted returns an indexed image of the grid. Colors that are
// not in p are mapped to their nearest palette entry.
func (g *Grid) Paletted(p palette.Palette) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, g.Width, g.Height), p.ColorPalette())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			i := p.Index(c)
			if i < 0 {
				i = p.Index(p.Nearest(c))
			}
			m.SetColorIndex(x, y, uint8(i))
		}
	}
	return m
}

// EncodePNG writes the grid as a PNG image. With a palette, the
// image is an indexed PNG.
func (g *Grid) EncodePNG(w io.Writer, p palette.Palette) error {
	encoder := &png.Encoder{CompressionLevel: png.BestCompression}
	if len(p) > 0 {
		return encoder.Encode(w, g.Paletted(p))
	}
	return encoder.Encode(w, g.Image())
}
