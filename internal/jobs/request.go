package jobs

import (
	"errors"
	"fmt"
	"image"
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/thoas/go-funk"

	"github.com/drawbot/drawbot/pkg/img"
	"github.com/drawbot/drawbot/pkg/palette"
	"github.com/drawbot/drawbot/pkg/strokes"
)

var rxArea = regexp.MustCompile(`^\s*(-?\d+)\s*,\s*(-?\d+)\s*,\s*(-?\d+)\s*,\s*(-?\d+)\s*$`)

// ParseArea parses a "x0,y0,x1,y1" screen area. The corners can be
// given in any order.
func ParseArea(s string) (image.Rectangle, error) {
	m := rxArea.FindStringSubmatch(s)
	if m == nil {
		return image.Rectangle{}, fmt.Errorf("invalid area %q (expected x0,y0,x1,y1)", s)
	}
	v := make([]int, 4)
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid area %q: %w", s, err)
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[2], v[3]), nil
}

// Request describes a drawing job.
type Request struct {
	// Source is an image file name or an http(s) URL.
	Source string `json:"source"`
	// Area is the screen area of the canvas.
	Area image.Rectangle `json:"area"`
	// Interval is the pixel step of the stroke extraction.
	Interval int `json:"interval"`
	// Palette is the list of paint colors, in swatch order.
	Palette palette.Palette `json:"palette"`
	// Positions are the swatch positions, in palette order.
	Positions []strokes.Point `json:"positions"`
	// Screen is set when the job is drawn on the screen. It then
	// requires a position for every palette slot.
	Screen bool `json:"-"`

	Image img.QuantizeOptions `json:"-"`
}

// Origin returns the top-left corner of the drawing area.
func (r *Request) Origin() strokes.Point {
	return strokes.Point{X: float64(r.Area.Min.X), Y: float64(r.Area.Min.Y)}
}

// Validate checks the request before anything is decoded or drawn.
func (r *Request) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Source, validation.Required),
		validation.Field(&r.Area, validation.By(isValidArea)),
		validation.Field(&r.Interval,
			validation.Required.Error("must be at least 1"),
			validation.Min(1),
		),
		validation.Field(&r.Palette,
			validation.Required,
			validation.Length(1, palette.MaxColors),
			validation.By(hasUniqueColors),
		),
		validation.Field(&r.Positions,
			validation.When(r.Screen, validation.By(r.hasAllPositions)),
		),
	)
}

func isValidArea(value interface{}) error {
	a, _ := value.(image.Rectangle)
	if a.Empty() {
		return errors.New("area is empty")
	}
	return nil
}

func hasUniqueColors(value interface{}) error {
	p, _ := value.(palette.Palette)
	hex := p.Hex()
	if len(funk.UniqString(hex)) != len(hex) {
		return errors.New("palette contains duplicate colors")
	}
	return nil
}

func (r *Request) hasAllPositions(value interface{}) error {
	p, _ := value.([]strokes.Point)
	if len(p) < len(r.Palette) {
		return fmt.Errorf("%d swatch positions for %d colors", len(p), len(r.Palette))
	}
	return nil
}

// VirtualPositions returns swatch positions for an offline canvas.
// They're placed on the row above the area so they never match
// a stroke point.
func VirtualPositions(area image.Rectangle, n int) []strokes.Point {
	res := make([]strokes.Point, n)
	for i := range res {
		res[i] = strokes.Point{
			X: float64(area.Min.X + i),
			Y: float64(area.Min.Y - 1),
		}
	}
	return res
}
