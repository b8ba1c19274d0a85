// Package hook watches global keyboard and mouse events, whatever
// window has the focus.
package hook

import (
	"context"
	"errors"
	"fmt"

	gohook "github.com/robotn/gohook"

	"github.com/drawbot/drawbot/pkg/strokes"
)

// ErrClosed is returned when the system event stream stops.
var ErrClosed = errors.New("event stream closed")

// start and end give access to the process wide event hook.
var (
	start = gohook.Start
	end   = gohook.End
)

// Listener calls stop when a given key is pressed.
type Listener struct {
	// Key is the cancel key name ("esc", "q", "f12"...).
	Key string
}

// NewListener returns a Listener waiting for the given key.
func NewListener(key string) (*Listener, error) {
	if _, ok := gohook.Keycode[key]; !ok {
		return nil, fmt.Errorf("unknown key %q", key)
	}
	return &Listener{Key: key}, nil
}

// Match returns true if the event is a press of the cancel key.
func (l *Listener) Match(ev gohook.Event) bool {
	if ev.Kind != gohook.KeyDown && ev.Kind != gohook.KeyHold {
		return false
	}
	return ev.Keycode == gohook.Keycode[l.Key]
}

// Listen implements drawing.Listener. The hook is started when Listen
// is called and stopped when ctx is done.
func (l *Listener) Listen(ctx context.Context, ready func(), stop func()) error {
	events := start()
	defer end()
	if events == nil {
		return ErrClosed
	}
	ready()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrClosed
			}
			if l.Match(ev) {
				stop()
			}
		}
	}
}

// Recorder collects the position of the palette swatches, one left
// click per swatch. A right click stops the collection.
type Recorder struct {
	Max       int
	Positions []strokes.Point
}

// NewRecorder returns a Recorder that stops after n clicks.
func NewRecorder(n int) *Recorder {
	return &Recorder{
		Max:       n,
		Positions: make([]strokes.Point, 0, n),
	}
}

// Handle processes one event. It returns true when the collection
// is over.
func (r *Recorder) Handle(ev gohook.Event) bool {
	if ev.Kind != gohook.MouseDown {
		return false
	}

	switch ev.Button {
	case gohook.MouseMap["left"]:
		r.Positions = append(r.Positions, strokes.Point{X: float64(ev.X), Y: float64(ev.Y)})
		return len(r.Positions) >= r.Max
	case gohook.MouseMap["right"]:
		return true
	}
	return false
}

// Record collects clicks until the collection is over or ctx is done.
// onClick, when not nil, is called after each recorded position.
func (r *Recorder) Record(ctx context.Context, onClick func(int, strokes.Point)) ([]strokes.Point, error) {
	events := start()
	defer end()

	for {
		select {
		case <-ctx.Done():
			return r.Positions, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return r.Positions, ErrClosed
			}
			n := len(r.Positions)
			done := r.Handle(ev)
			if onClick != nil && len(r.Positions) > n {
				onClick(len(r.Positions), r.Positions[n])
			}
			if done {
				return r.Positions, nil
			}
		}
	}
}
