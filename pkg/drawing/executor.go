package drawing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/drawbot/drawbot/pkg/palette"
	"github.com/drawbot/drawbot/pkg/strokes"
)

// DefaultSegmentDelay is the pause after each segment. Paint
// applications drop input events when they come too fast.
const DefaultSegmentDelay = 10 * time.Millisecond

var errListenerStopped = errors.New("listener stopped before the job started")

// Result is the outcome of a drawing job.
type Result struct {
	// Colors is the number of colors fully drawn.
	Colors int
	// Segments is the number of segments drawn.
	Segments int
	// Canceled is true when the job stopped before its end.
	Canceled bool
}

// Executor draws stroke plans with a Pointer.
type Executor struct {
	Pointer  Pointer
	Listener Listener

	// SegmentDelay is the pause after each segment.
	SegmentDelay time.Duration
	// ColorDelay is the pause after a color selection.
	ColorDelay time.Duration

	EventHandler EventHandler
}

// NewExecutor returns an Executor with the default delays.
func NewExecutor(p Pointer, l Listener) *Executor {
	return &Executor{
		Pointer:      p,
		Listener:     l,
		SegmentDelay: DefaultSegmentDelay,
	}
}

func (e *Executor) sendEvent(ctx context.Context, event Event) {
	if e.EventHandler != nil {
		e.EventHandler(ctx, event)
	}
}

// Check returns a *MissingCoordinateError if a color of the plan that
// must be drawn has no swatch position.
func Check(plan strokes.Plan, p palette.Palette, coords Coordinates) error {
	for i, c := range p {
		if c.IsWhite() || len(plan[c]) == 0 {
			continue
		}
		if _, ok := coords[c]; !ok {
			return &MissingCoordinateError{Color: c, Slot: i}
		}
	}
	return nil
}

// Draw replays the plan, one color after the other in palette order.
// Colors that are not in the palette are not drawn.
//
// The job listener runs while Draw runs and is stopped before Draw
// returns. When the listener calls stop, or when ctx is done, the job
// stops at the next segment boundary. This is not an error and the
// returned Result is marked as canceled.
func (e *Executor) Draw(ctx context.Context, plan strokes.Plan, p palette.Palette, coords Coordinates) (res Result, err error) {
	// Configuration errors must happen before the first pointer event
	if err = Check(plan, p, coords); err != nil {
		return
	}

	token := new(Token)

	lctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	var listenErr error
	listening := make(chan struct{})
	listenDone := make(chan struct{})
	if e.Listener != nil {
		var once sync.Once
		ready := func() {
			once.Do(func() { close(listening) })
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer close(listenDone)
			err := e.Listener.Listen(lctx, ready, token.Stop)
			if err != nil && !errors.Is(err, context.Canceled) {
				listenErr = err
				token.Stop()
			}
		}()
	} else {
		close(listening)
	}
	defer func() {
		cancel()
		wg.Wait()
		if listenErr != nil && err == nil {
			err = &EnvironmentError{"listen", listenErr}
		}
		if err == nil {
			e.sendEvent(ctx, EventDone(res))
		}
	}()

	// No pointer event before the cancel gesture can be caught
	select {
	case <-listening:
	case <-listenDone:
		if listenErr == nil && ctx.Err() == nil {
			listenErr = errListenerStopped
		}
		if listenErr != nil {
			return
		}
	case <-ctx.Done():
	}

	total := 0
	colors := 0
	for _, c := range p {
		if !c.IsWhite() && len(plan[c]) > 0 {
			total += len(plan[c])
			colors++
		}
	}
	e.sendEvent(ctx, &EventStart{Colors: colors, Segments: total})

	stopped := func() bool {
		if token.Stopped() || ctx.Err() != nil {
			res.Canceled = true
			e.sendEvent(ctx, &EventCancel{Segments: res.Segments})
			return true
		}
		return false
	}

	done := map[palette.Color]bool{}
	for slot, c := range p {
		segments := plan[c]
		if c.IsWhite() || len(segments) == 0 || done[c] {
			continue
		}
		done[c] = true

		if stopped() {
			return
		}

		swatch := coords[c]
		e.sendEvent(ctx, &EventColor{Color: c, Slot: slot, Swatch: swatch, Segments: len(segments)})
		if err = e.click(swatch); err != nil {
			err = &EnvironmentError{"select color", err}
			return
		}
		e.wait(ctx, e.ColorDelay)

		for _, s := range segments {
			if stopped() {
				return
			}
			if err = e.line(s); err != nil {
				err = &EnvironmentError{"draw segment", err}
				return
			}
			res.Segments++
			e.sendEvent(ctx, &EventSegment{Color: c, Segment: s})
			e.wait(ctx, e.SegmentDelay)
		}
		res.Colors++
	}

	return
}

// click selects a swatch.
func (e *Executor) click(pos strokes.Point) error {
	if err := e.Pointer.Move(pos.X, pos.Y); err != nil {
		return err
	}
	if err := e.Pointer.Press(); err != nil {
		return err
	}
	return e.Pointer.Release()
}

// line draws a segment. Once pressed, the button is always released.
func (e *Executor) line(s strokes.Segment) error {
	if err := e.Pointer.Move(s.Start.X, s.Start.Y); err != nil {
		return err
	}
	if err := e.Pointer.Press(); err != nil {
		return err
	}
	err := e.Pointer.Move(s.End.X, s.End.Y)
	if rerr := e.Pointer.Release(); err == nil {
		err = rerr
	}
	return err
}

func (e *Executor) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
