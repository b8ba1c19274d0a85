// The error diffusion matrices come from
// https://github.com/esimov/dithergo/ (MIT licensed).

package img

import (
	"fmt"
	"image"
	"sort"

	"github.com/drawbot/drawbot/pkg/palette"
)

// DitherFilter defines an error diffusion matrix. The first row is
// the current image row and the current pixel sits in the middle
// column. Every other row is one row below the previous one.
type DitherFilter [][]float32

var dithers = map[string]DitherFilter{
	"Atkinson": {
		{0.0, 0.0, 0.0, 1.0 / 8.0, 1.0 / 8.0},
		{0.0, 1.0 / 8.0, 1.0 / 8.0, 1.0 / 8.0, 0.0},
		{0.0, 0.0, 1.0 / 8.0, 0.0, 0.0},
	},

	"Burkes": {
		{0.0, 0.0, 0.0, 8.0 / 32.0, 4.0 / 32.0},
		{2.0 / 32.0, 4.0 / 32.0, 8.0 / 32.0, 4.0 / 32.0, 2.0 / 32.0},
	},

	"FloydSteinberg": {
		{0.0, 0.0, 7.0 / 16.0},
		{3.0 / 16.0, 5.0 / 16.0, 1.0 / 16.0},
	},

	"JarvisJudiceNinke": {
		{0.0, 0.0, 0.0, 7.0 / 48.0, 5.0 / 48.0},
		{3.0 / 48.0, 5.0 / 48.0, 7.0 / 48.0, 5.0 / 48.0, 3.0 / 48.0},
		{1.0 / 48.0, 3.0 / 48.0, 5.0 / 48.0, 3.0 / 48.0, 1.0 / 48.0},
	},

	"Sierra2": {
		{0.0, 0.0, 0.0, 4.0 / 16.0, 3.0 / 16.0},
		{1.0 / 16.0, 2.0 / 16.0, 3.0 / 16.0, 2.0 / 16.0, 1.0 / 16.0},
	},

	"Sierra3": {
		{0.0, 0.0, 0.0, 5.0 / 32.0, 3.0 / 32.0},
		{2.0 / 32.0, 4.0 / 32.0, 5.0 / 32.0, 4.0 / 32.0, 2.0 / 32.0},
		{0.0, 2.0 / 32.0, 3.0 / 32.0, 2.0 / 32.0, 0.0},
	},

	"SierraLite": {
		{0.0, 0.0, 2.0 / 4.0},
		{1.0 / 4.0, 1.0 / 4.0, 0.0},
	},

	"Stucki": {
		{0.0, 0.0, 0.0, 8.0 / 42.0, 4.0 / 42.0},
		{2.0 / 42.0, 4.0 / 42.0, 8.0 / 42.0, 4.0 / 42.0, 2.0 / 42.0},
		{1.0 / 42.0, 2.0 / 42.0, 4.0 / 42.0, 2.0 / 42.0, 1.0 / 42.0},
	},
}

// DefaultDither is the dither filter used when none is given.
const DefaultDither = "FloydSteinberg"

// GetDither returns a dither filter by its name.
func GetDither(name string) (DitherFilter, error) {
	if name == "" {
		name = DefaultDither
	}
	d, ok := dithers[name]
	if !ok {
		return nil, fmt.Errorf("dither method not found: %s", name)
	}
	return d, nil
}

// DitherNames returns the available dither filters.
func DitherNames() []string {
	res := make([]string, 0, len(dithers))
	for k := range dithers {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Palette converts an image to a dithered grid that only contains
// colors of the given palette. Pixels are processed row by row, left
// to right.
func (d DitherFilter) Palette(input image.Image, p palette.Palette, errorMultiplier float32) *Grid {
	bounds := input.Bounds()
	dx, dy := bounds.Dx(), bounds.Dy()
	g := NewGrid(dx, dy)

	// Accumulated error per pixel and channel
	errors := make([][3]float32, dx*dy)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			c := palette.FromColor(input.At(bounds.Min.X+x, bounds.Min.Y+y))
			e := errors[y*dx+x]
			r := float32(c.R) + e[0]*errorMultiplier
			gr := float32(c.G) + e[1]*errorMultiplier
			b := float32(c.B) + e[2]*errorMultiplier

			res := p.Nearest(palette.Color{R: clamp(r), G: clamp(gr), B: clamp(b)})
			g.Set(x, y, res)

			qr := r - float32(res.R)
			qg := gr - float32(res.G)
			qb := b - float32(res.B)

			// Diffuse the error to the neighboring pixels
			for yy, row := range d {
				for col, w := range row {
					if w == 0 {
						continue
					}
					nx, ny := x+col-len(row)/2, y+yy
					if nx < 0 || nx >= dx || ny >= dy {
						continue
					}
					i := ny*dx + nx
					errors[i][0] += qr * w
					errors[i][1] += qg * w
					errors[i][2] += qb * w
				}
			}
		}
	}
	return g
}

func clamp(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
