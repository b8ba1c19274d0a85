package drawing

import (
	"context"

	"github.com/drawbot/drawbot/pkg/palette"
	"github.com/drawbot/drawbot/pkg/strokes"
)

// EventHandler receives the executor events.
type EventHandler func(context.Context, Event)

// Event is the interface for events emitted by the executor.
type Event interface {
	Fields() map[string]interface{}
}

// EventStart is emitted before the first pointer event.
type EventStart struct {
	Colors   int
	Segments int
}

// Fields returns the field map.
func (e *EventStart) Fields() map[string]interface{} {
	return map[string]interface{}{
		"colors":   e.Colors,
		"segments": e.Segments,
	}
}

// EventColor is emitted when the executor selects a new color.
type EventColor struct {
	Color    palette.Color
	Slot     int
	Swatch   strokes.Point
	Segments int
}

// Fields returns the field map.
func (e *EventColor) Fields() map[string]interface{} {
	return map[string]interface{}{
		"color":    e.Color.Hex(),
		"slot":     e.Slot + 1,
		"swatch":   e.Swatch.String(),
		"segments": e.Segments,
	}
}

// EventSegment is emitted after a segment is drawn.
type EventSegment struct {
	Color   palette.Color
	Segment strokes.Segment
}

// Fields returns the field map.
func (e *EventSegment) Fields() map[string]interface{} {
	return map[string]interface{}{
		"color": e.Color.Hex(),
		"start": e.Segment.Start.String(),
		"end":   e.Segment.End.String(),
	}
}

// EventCancel is emitted when the job stops before its end.
type EventCancel struct {
	Segments int
}

// Fields returns the field map.
func (e *EventCancel) Fields() map[string]interface{} {
	return map[string]interface{}{
		"segments": e.Segments,
	}
}

// EventDone is emitted when the job ends, canceled or not.
type EventDone Result

// Fields returns the field map.
func (e EventDone) Fields() map[string]interface{} {
	return map[string]interface{}{
		"colors":   e.Colors,
		"segments": e.Segments,
		"canceled": e.Canceled,
	}
}
