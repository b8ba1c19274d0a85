package app

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/drawbot/drawbot/configs"
	"github.com/drawbot/drawbot/internal/jobs"
	"github.com/drawbot/drawbot/pkg/drawing"
)

// eventLogFormatter is the dev mode formatter of the drawing events.
type eventLogFormatter struct{}

func (f *eventLogFormatter) Format(entry *log.Entry) ([]byte, error) {
	var b bytes.Buffer

	w := color.New(color.FgWhite)
	bl := color.New(color.FgBlue)

	w.Fprint(&b, "[DRAW")
	if id, ok := entry.Data["@id"]; ok {
		bl.Fprintf(&b, " %s", id)
	}
	w.Fprint(&b, "] ")

	switch entry.Message {
	case "start":
		color.New(color.Bold, color.FgHiBlue).Fprint(&b, "start")
		w.Fprintf(&b, " %v colors, %v segments", entry.Data["colors"], entry.Data["segments"])
	case "color":
		color.New(color.Bold, color.FgHiGreen).Fprint(&b, "color")
		w.Fprintf(&b, " %v", entry.Data["color"])
		color.New(color.FgCyan).Fprintf(&b, " slot %v at %v", entry.Data["slot"], entry.Data["swatch"])
		w.Fprintf(&b, ", %v segments", entry.Data["segments"])
	case "segment":
		color.New(color.FgHiWhite).Fprint(&b, "segment")
		w.Fprintf(&b, " %v %v -> %v", entry.Data["color"], entry.Data["start"], entry.Data["end"])
	case "cancel":
		color.New(color.Bold, color.FgYellow).Fprint(&b, "canceled")
		w.Fprintf(&b, " after %v segments", entry.Data["segments"])
	case "done":
		color.New(color.Bold, color.FgGreen).Fprint(&b, "done")
		w.Fprintf(&b, " %v colors, %v segments", entry.Data["colors"], entry.Data["segments"])
	default:
		color.New(color.Bold, color.FgRed).Fprint(&b, entry.Message)
	}

	b.WriteString("\n")
	return b.Bytes(), nil
}

func newEventLogger() *log.Logger {
	if !configs.Config.Main.DevMode {
		return log.StandardLogger()
	}

	color.NoColor = false
	l := log.New()
	l.Out = log.StandardLogger().Out
	l.Formatter = &eventLogFormatter{}
	l.Level = log.StandardLogger().Level
	return l
}

// eventName returns the log message of an executor event.
func eventName(e drawing.Event) string {
	switch e.(type) {
	case *drawing.EventStart:
		return "start"
	case *drawing.EventColor:
		return "color"
	case *drawing.EventSegment:
		return "segment"
	case *drawing.EventCancel:
		return "cancel"
	case drawing.EventDone:
		return "done"
	}
	return fmt.Sprintf("%T", e)
}

// eventHandler logs the executor events of a job. Segments are
// logged at the trace level.
func eventHandler(job *jobs.Job) drawing.EventHandler {
	logger := newEventLogger()

	return func(_ context.Context, e drawing.Event) {
		entry := logger.WithField("@id", job.ID).WithFields(e.Fields())
		switch e.(type) {
		case *drawing.EventSegment:
			entry.Trace(eventName(e))
		case *drawing.EventCancel:
			entry.Warn(eventName(e))
		default:
			entry.Info(eventName(e))
		}
	}
}
