// Package canvas is an offline paint canvas. It receives the same
// pointer events as the real paint application and renders them into
// an image, to preview a drawing job without touching the screen.
package canvas

import (
	"image"
	"io"
	"os"

	"github.com/gogpu/gg"

	"github.com/drawbot/drawbot/pkg/drawing"
	"github.com/drawbot/drawbot/pkg/palette"
	"github.com/drawbot/drawbot/pkg/strokes"
)

// Canvas implements drawing.Pointer.
type Canvas struct {
	// Strokes is the number of press-release actions that painted.
	Strokes int
	// Selections is the number of swatch clicks.
	Selections int

	dc       *gg.Context
	origin   strokes.Point
	swatches drawing.Coordinates
	current  palette.Color
	pos      strokes.Point
	painting bool
}

// New returns a white canvas of w x h pixels placed at origin on the
// screen. A press at a swatch position selects the swatch color,
// like in the paint application. The initial color is black.
func New(origin strokes.Point, w, h int, swatches drawing.Coordinates) *Canvas {
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.White)
	dc.SetLineWidth(1)
	dc.SetLineCap(gg.LineCapSquare)

	return &Canvas{
		dc:       dc,
		origin:   origin,
		swatches: swatches,
		current:  palette.Black,
	}
}

// Color returns the selected color.
func (c *Canvas) Color() palette.Color {
	return c.current
}

// Move implements drawing.Pointer. While the button is pressed, it
// paints a line from the previous position.
func (c *Canvas) Move(x, y float64) error {
	to := strokes.Point{X: x, Y: y}
	if c.painting && to != c.pos {
		c.dc.SetColor(c.current)
		c.dc.DrawLine(c.pixel(c.pos, to))
		if err := c.dc.Stroke(); err != nil {
			return err
		}
	}
	c.pos = to
	return nil
}

// Press implements drawing.Pointer.
func (c *Canvas) Press() error {
	for col, p := range c.swatches {
		if p == c.pos {
			c.current = col
			c.Selections++
			return nil
		}
	}

	c.painting = true
	c.Strokes++
	x, y := c.local(c.pos)
	c.dc.SetColor(c.current)
	c.dc.DrawRectangle(x-0.5, y-0.5, 1, 1)
	return c.dc.Fill()
}

// Release implements drawing.Pointer.
func (c *Canvas) Release() error {
	c.painting = false
	return nil
}

// local returns the center of the pixel at a screen position.
func (c *Canvas) local(p strokes.Point) (float64, float64) {
	return p.X - c.origin.X + 0.5, p.Y - c.origin.Y + 0.5
}

func (c *Canvas) pixel(from, to strokes.Point) (float64, float64, float64, float64) {
	x0, y0 := c.local(from)
	x1, y1 := c.local(to)
	return x0, y0, x1, y1
}

// Image returns the canvas image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG saves the canvas to a PNG file.
func (c *Canvas) SavePNG(filename string) error {
	fd, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = c.EncodePNG(fd); err != nil {
		defer fd.Close()
		return err
	}
	return fd.Close()
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
