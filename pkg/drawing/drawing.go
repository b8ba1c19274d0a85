// Package drawing replays a stroke plan with pointer events on an
// external paint canvas.
package drawing

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/drawbot/drawbot/pkg/palette"
	"github.com/drawbot/drawbot/pkg/strokes"
)

// Pointer synthesizes pointer events. Coordinates are absolute
// screen coordinates.
type Pointer interface {
	Move(x, y float64) error
	Press() error
	Release() error
}

// Listener waits for a cancel gesture and calls stop when it happens.
// It calls ready once it watches for the gesture. Listen blocks until
// ctx is done; it returns an error only when it can't watch for the
// gesture anymore.
type Listener interface {
	Listen(ctx context.Context, ready func(), stop func()) error
}

// Token is the cancellation token of one drawing job. It's shared
// between the executor loop and the job listener.
type Token struct {
	stopped atomic.Bool
}

// Stop requests the job to stop.
func (t *Token) Stop() {
	t.stopped.Store(true)
}

// Stopped returns true once Stop has been called.
func (t *Token) Stopped() bool {
	return t.stopped.Load()
}

// Coordinates holds the swatch position of every palette color.
type Coordinates map[palette.Color]strokes.Point

// Zip pairs every palette slot with the position recorded for the
// same slot. Slots without a position are left out.
func Zip(p palette.Palette, positions []strokes.Point) Coordinates {
	res := Coordinates{}
	for i, c := range p {
		if i >= len(positions) {
			break
		}
		if _, ok := res[c]; !ok {
			res[c] = positions[i]
		}
	}
	return res
}

// MissingCoordinateError is returned when a color that must be drawn
// has no swatch position.
type MissingCoordinateError struct {
	Color palette.Color
	Slot  int
}

func (e *MissingCoordinateError) Error() string {
	return fmt.Sprintf("no swatch position for color %s (slot %d)", e.Color, e.Slot+1)
}

// EnvironmentError is returned when the operating system refuses
// an input operation. The canvas state is unknown after such an error.
type EnvironmentError struct {
	Op  string
	Err error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}
