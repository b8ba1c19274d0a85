package img

import (
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/drawbot/drawbot/pkg/palette"
)

// ErrInvalidSize is returned when the target size is empty.
var ErrInvalidSize = errors.New("invalid target size")

// QuantizeOptions holds the options of Quantize.
type QuantizeOptions struct {
	// Processor is the resize processor name ("native" or "bild").
	Processor string
	// Dither enables error diffusion.
	Dither bool
	// DitherFilter is the name of the error diffusion matrix.
	DitherFilter string
	// ErrorMultiplier scales the diffused error. 0 means 1.
	ErrorMultiplier float32
	// Stretch resizes to the exact target size instead of keeping
	// the source aspect ratio.
	Stretch bool
}

// Quantize resizes an image so it fits in w x h and maps every pixel
// to a palette color, either to the nearest one or with an error
// diffusion dithering.
func Quantize(m image.Image, p palette.Palette, w, h int, options QuantizeOptions) (*Grid, error) {
	if len(p) == 0 {
		return nil, palette.ErrEmptyPalette
	}
	if w < 1 || h < 1 {
		return nil, ErrInvalidSize
	}

	if !options.Stretch {
		w, h = FitSize(m.Bounds(), w, h)
	}
	if options.Processor == "" {
		options.Processor = "native"
	}

	resized, err := Resize(options.Processor, Flatten(m), w, h)
	if err != nil {
		return nil, err
	}

	if options.Dither {
		d, err := GetDither(options.DitherFilter)
		if err != nil {
			return nil, err
		}
		mul := options.ErrorMultiplier
		if mul == 0 {
			mul = 1
		}
		return d.Palette(resized, p, mul), nil
	}

	return Nearest(resized, p), nil
}

// Nearest maps every pixel of an image to its nearest palette color.
func Nearest(m image.Image, p palette.Palette) *Grid {
	bounds := m.Bounds()
	g := NewGrid(bounds.Dx(), bounds.Dy())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := palette.FromColor(m.At(bounds.Min.X+x, bounds.Min.Y+y))
			g.Set(x, y, p.Nearest(c))
		}
	}
	return g
}

// Flatten draws an image over a white background, so transparent
// areas end up as blank canvas.
func Flatten(m image.Image) image.Image {
	b := m.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, m, image.Pt(0, 0), 1.0)
}
