// Package strokes converts a quantized image into same color line
// segments that a pointer can draw with one press-move-release.
package strokes

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/drawbot/drawbot/pkg/palette"
)

// ErrInvalidInterval is returned when the pixel interval is lower than 1.
var ErrInvalidInterval = errors.New("pixel interval must be at least 1")

// Grid is a quantized pixel grid.
type Grid interface {
	Bounds() (w, h int)
	At(x, y int) palette.Color
}

// Point is an absolute screen coordinate.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by x and y.
func (p Point) Add(x, y int) Point {
	return Point{p.X + float64(x), p.Y + float64(y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Segment is a straight line drawn in one stroke.
type Segment struct {
	Start Point
	End   Point
}

// Plan holds the segments to draw for every color, in extraction order.
type Plan map[palette.Color][]Segment

// Count returns the number of segments that will be drawn, leaving
// out white ones.
func (p Plan) Count() int {
	n := 0
	for c, segments := range p {
		if !c.IsWhite() {
			n += len(segments)
		}
	}
	return n
}

// Orientation is the scan direction of the grid.
type Orientation int

const (
	// Vertical scans every column from top to bottom.
	Vertical Orientation = iota
	// Horizontal scans every row from left to right.
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Extract scans the grid in the given orientation, one line out of
// "interval" and one pixel out of "interval" on each line. It returns
// the runs of same color pixels as segments, translated by origin, and
// their count. White runs are blank canvas and are left out.
func Extract(g Grid, o Orientation, origin Point, interval int) (Plan, int) {
	if interval < 1 {
		interval = 1
	}
	w, h := g.Bounds()
	if o == Horizontal {
		w, h = h, w
	}

	plan := Plan{}
	count := 0

	for i := 0; i < w; i += interval {
		var (
			open  bool
			color palette.Color
			start Point
			end   Point
		)
		closeRun := func() {
			if color.IsWhite() {
				return
			}
			count++
			plan[color] = append(plan[color], Segment{start, end})
		}

		for j := 0; j < h; j += interval {
			var c palette.Color
			var pos Point
			if o == Horizontal {
				c = g.At(j, i)
				pos = origin.Add(j, i)
			} else {
				c = g.At(i, j)
				pos = origin.Add(i, j)
			}

			switch {
			case !open:
				open, color, start = true, c, pos
			case c != color:
				closeRun()
				color, start = c, pos
			}
			end = pos
		}

		if open {
			closeRun()
		}
	}

	return plan, count
}

// Compile extracts the segments in both orientations and returns
// the plan with the fewest non white segments. Vertical wins ties.
func Compile(ctx context.Context, g Grid, origin Point, interval int) (Plan, error) {
	if interval < 1 {
		return nil, ErrInvalidInterval
	}

	var (
		plans  [2]Plan
		counts [2]int
	)

	eg, ctx := errgroup.WithContext(ctx)
	for _, o := range []Orientation{Vertical, Horizontal} {
		o := o
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plans[o], counts[o] = Extract(g, o, origin, interval)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if counts[Vertical] > counts[Horizontal] {
		return plans[Horizontal], nil
	}
	return plans[Vertical], nil
}
