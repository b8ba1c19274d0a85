package app

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/drawbot/drawbot/configs"
	"github.com/drawbot/drawbot/internal/jobs"
	"github.com/drawbot/drawbot/pkg/positions"
)

// imageFlags are the flags shared by the commands that process
// an image. Flags that are not set fall back to the configuration.
type imageFlags struct {
	area     string
	interval int
	dither   bool
	filter   string
	stretch  bool
}

func (f *imageFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.area, "area", "a", "", "Screen area of the canvas (x0,y0,x1,y1)")
	fs.IntVarP(&f.interval, "interval", "i", 0, "Pixel interval (default from configuration)")
	fs.BoolVarP(&f.dither, "dither", "d", false, "Enable dithering (default from configuration)")
	fs.StringVar(&f.filter, "filter", "", "Dither filter, implies --dither")
	fs.BoolVar(&f.stretch, "stretch", false, "Stretch the image to the area (default from configuration)")
}

// request builds a job request from the configuration and
// the flags set in fs.
func (f *imageFlags) request(fs *pflag.FlagSet, source string) (*jobs.Request, error) {
	if f.area == "" {
		return nil, errors.New("missing --area")
	}
	area, err := jobs.ParseArea(f.area)
	if err != nil {
		return nil, err
	}

	p, err := configPalette()
	if err != nil {
		return nil, err
	}

	r := &jobs.Request{
		Source:   source,
		Area:     area,
		Interval: configs.Config.Drawing.PixelInterval,
		Palette:  p,
	}
	r.Image.Processor = configs.Config.Image.Processor
	r.Image.Dither = configs.Config.Image.Dither
	r.Image.DitherFilter = configs.Config.Image.DitherFilter
	r.Image.ErrorMultiplier = float32(configs.Config.Image.ErrorMultiplier)
	r.Image.Stretch = configs.Config.Image.Stretch

	if fs.Changed("interval") {
		r.Interval = f.interval
	}
	if fs.Changed("filter") {
		r.Image.DitherFilter = f.filter
		r.Image.Dither = true
	}
	if fs.Changed("dither") {
		r.Image.Dither = f.dither
	}
	if fs.Changed("stretch") {
		r.Image.Stretch = f.stretch
	}

	return r, nil
}

// withPositions adds the saved swatch positions to a request
// that is drawn on the screen.
func withPositions(r *jobs.Request) error {
	p, err := positions.Load(configs.Config.Palette.PositionsFile)
	if errors.Is(err, positions.ErrNotFound) {
		return fmt.Errorf("%w, run \"drawbot positions record\" first", err)
	}
	if err != nil {
		return err
	}
	r.Positions = p
	r.Screen = true
	return nil
}
