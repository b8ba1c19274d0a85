package canvas

import (
	"bytes"
	"context"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawbot/drawbot/pkg/drawing"
	"github.com/drawbot/drawbot/pkg/palette"
	"github.com/drawbot/drawbot/pkg/strokes"
)

var red = palette.Color{R: 255, G: 0, B: 19}

type grid [][]palette.Color

func (g grid) Bounds() (int, int) {
	return len(g[0]), len(g)
}

func (g grid) At(x, y int) palette.Color {
	return g[y][x]
}

// colorAt returns the palette color closest to a canvas pixel.
func colorAt(c *Canvas, p palette.Palette, x, y int) palette.Color {
	return p.Nearest(palette.FromColor(c.Image().At(x, y)))
}

func TestCanvas(t *testing.T) {
	p := palette.Palette{palette.Black, palette.White, red}
	coords := drawing.Zip(p, []strokes.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 30, Y: 10}})

	t.Run("select", func(t *testing.T) {
		c := New(strokes.Point{X: 100, Y: 100}, 4, 4, coords)
		defer c.Close()
		assert.Equal(t, palette.Black, c.Color())

		require.NoError(t, c.Move(30, 10))
		require.NoError(t, c.Press())
		require.NoError(t, c.Release())
		assert.Equal(t, red, c.Color())
		assert.Equal(t, 1, c.Selections)
		assert.Equal(t, 0, c.Strokes)
	})

	t.Run("draw job", func(t *testing.T) {
		W, B, R := palette.White, palette.Black, red
		g := grid{
			{B, B, B, B, W, W},
			{W, W, W, W, W, R},
			{W, W, W, W, W, R},
			{W, R, W, W, W, R},
		}
		origin := strokes.Point{X: 100, Y: 200}
		plan, err := strokes.Compile(context.Background(), g, origin, 1)
		require.NoError(t, err)

		c := New(origin, 6, 4, coords)
		defer c.Close()

		e := &drawing.Executor{Pointer: c}
		res, err := e.Draw(context.Background(), plan, p, coords)
		require.NoError(t, err)
		assert.Equal(t, plan.Count(), res.Segments)
		assert.Equal(t, res.Segments, c.Strokes)
		assert.Equal(t, 2, c.Selections)

		for y, row := range g {
			for x, expected := range row {
				assert.Equal(t, expected, colorAt(c, p, x, y), "pixel %d,%d", x, y)
			}
		}

		buf := new(bytes.Buffer)
		require.NoError(t, c.EncodePNG(buf))
		m, err := png.Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, 6, m.Bounds().Dx())

		name := filepath.Join(t.TempDir(), "out.png")
		require.NoError(t, c.SavePNG(name))
	})
}
