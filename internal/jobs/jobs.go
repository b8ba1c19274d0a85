// Package jobs prepares drawing jobs: it validates requests, decodes
// and quantizes their image, and builds their stroke plan.
package jobs

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/gammazero/workerpool"
	"github.com/lithammer/shortuuid/v3"
	log "github.com/sirupsen/logrus"

	"github.com/drawbot/drawbot/pkg/drawing"
	"github.com/drawbot/drawbot/pkg/img"
	"github.com/drawbot/drawbot/pkg/strokes"
)

// Job is a prepared drawing job.
type Job struct {
	ID      string
	Request *Request
	Grid    *img.Grid
	Plan    strokes.Plan
}

// Log returns a log entry carrying the job ID.
func (j *Job) Log() *log.Entry {
	return log.WithField("@id", j.ID)
}

// Coordinates returns the swatch position of every palette color.
// Jobs that are not drawn on the screen get virtual positions.
func (j *Job) Coordinates() drawing.Coordinates {
	positions := j.Request.Positions
	if !j.Request.Screen && len(positions) < len(j.Request.Palette) {
		positions = VirtualPositions(j.Request.Area, len(j.Request.Palette))
	}
	return drawing.Zip(j.Request.Palette, positions)
}

// Processor decodes and quantizes images on a single worker so
// only one image is held in memory at a time.
type Processor struct {
	Client *http.Client
	pool   *workerpool.WorkerPool
}

type result struct {
	grid *img.Grid
	err  error
}

// NewProcessor starts a new processor.
func NewProcessor() *Processor {
	return &Processor{
		Client: http.DefaultClient,
		pool:   workerpool.New(1),
	}
}

// Stop waits for the running task and stops the worker.
func (p *Processor) Stop() {
	p.pool.StopWait()
}

// Quantize loads the request image and maps it to the request palette
// at the area size. It waits for the worker or for ctx.
func (p *Processor) Quantize(ctx context.Context, r *Request) (*img.Grid, error) {
	c := make(chan result, 1)
	p.pool.Submit(func() {
		defer func() {
			if rec := recover(); rec != nil {
				c <- result{err: fmt.Errorf("image processing: %v", rec)}
			}
		}()
		if ctx.Err() != nil {
			c <- result{err: ctx.Err()}
			return
		}
		g, err := p.quantize(r)
		c <- result{g, err}
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-c:
		return res.grid, res.err
	}
}

func (p *Processor) quantize(r *Request) (*img.Grid, error) {
	m, format, err := p.Open(r.Source)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"source": r.Source,
		"format": format,
		"size":   m.Bounds().Size().String(),
	}).Debug("image loaded")

	return img.Quantize(m, r.Palette, r.Area.Dx(), r.Area.Dy(), r.Image)
}

// Open decodes an image from a file name or an http(s) URL.
func (p *Processor) Open(src string) (image.Image, string, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return img.OpenURL(src, p.Client)
	}
	return img.Open(src)
}

// Prepare validates a request, quantizes its image and builds the
// stroke plan.
func (p *Processor) Prepare(ctx context.Context, r *Request) (*Job, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	job := &Job{
		ID:      shortuuid.New(),
		Request: r,
	}

	var err error
	if job.Grid, err = p.Quantize(ctx, r); err != nil {
		return nil, err
	}

	if job.Plan, err = strokes.Compile(ctx, job.Grid, r.Origin(), r.Interval); err != nil {
		return nil, err
	}

	w, h := job.Grid.Bounds()
	job.Log().WithFields(log.Fields{
		"width":    w,
		"height":   h,
		"segments": job.Plan.Count(),
	}).Debug("job ready")

	return job, nil
}
