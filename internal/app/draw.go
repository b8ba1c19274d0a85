package app

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/drawbot/drawbot/configs"
	"github.com/drawbot/drawbot/internal/jobs"
	"github.com/drawbot/drawbot/pkg/canvas"
	"github.com/drawbot/drawbot/pkg/drawing"
	"github.com/drawbot/drawbot/pkg/drawing/hook"
	"github.com/drawbot/drawbot/pkg/drawing/robot"
	"github.com/drawbot/drawbot/pkg/drawing/term"
)

var drawFlags struct {
	imageFlags
	dryRun string
}

func init() {
	cmd := &cobra.Command{
		Use:   "draw IMAGE",
		Short: "Draw an image in the canvas area",
		Long: "Draw an image (file or URL) in the canvas area with the saved swatch positions.\n" +
			"The drawing stops with the cancel key.",
		Args: cobra.ExactArgs(1),
		RunE: runDraw,
	}
	drawFlags.register(cmd.Flags())
	cmd.Flags().StringVar(&drawFlags.dryRun, "dry-run", "",
		"Render the strokes to a PNG file instead of the screen")

	rootCmd.AddCommand(cmd)
}

// newListener returns the configured cancel listener.
func newListener() (drawing.Listener, error) {
	switch strings.ToLower(configs.Config.Drawing.CancelListener) {
	case "", "hook":
		return hook.NewListener(configs.Config.Drawing.CancelKey)
	case "term":
		// Log lines must end with CRLF while the terminal is raw
		log.SetOutput(term.NewWriter(log.StandardLogger().Out))
		return term.NewListener(), nil
	default:
		return nil, fmt.Errorf("unknown cancel listener %q", configs.Config.Drawing.CancelListener)
	}
}

func runDraw(cmd *cobra.Command, args []string) error {
	r, err := drawFlags.request(cmd.Flags(), args[0])
	if err != nil {
		return err
	}

	dryRun := drawFlags.dryRun != ""
	if !dryRun {
		if err = withPositions(r); err != nil {
			return err
		}
	}

	p := jobs.NewProcessor()
	defer p.Stop()

	job, err := p.Prepare(cmd.Context(), r)
	if err != nil {
		return err
	}
	coords := job.Coordinates()

	var e *drawing.Executor
	var cv *canvas.Canvas
	if dryRun {
		cv = canvas.New(r.Origin(), r.Area.Dx(), r.Area.Dy(), coords)
		defer cv.Close()
		e = &drawing.Executor{Pointer: cv}
	} else {
		l, err := newListener()
		if err != nil {
			return err
		}
		e = drawing.NewExecutor(robot.New(), l)
		e.SegmentDelay = configs.Config.Drawing.SegmentDelayDuration()
		e.ColorDelay = configs.Config.Drawing.ColorDelayDuration()
	}
	e.EventHandler = eventHandler(job)

	res, err := e.Draw(cmd.Context(), job.Plan, r.Palette, coords)
	if err != nil {
		return err
	}

	if dryRun {
		if err = cv.SavePNG(drawFlags.dryRun); err != nil {
			return err
		}
		job.Log().WithFields(log.Fields{
			"path":       drawFlags.dryRun,
			"strokes":    cv.Strokes,
			"selections": cv.Selections,
		}).Info("canvas saved")
	}

	if res.Canceled {
		job.Log().Warn("drawing canceled")
	}
	return nil
}
