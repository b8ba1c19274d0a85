package configs

import (
	"os"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/drawbot/drawbot/pkg/drawing"
	"github.com/drawbot/drawbot/pkg/img"
	"github.com/drawbot/drawbot/pkg/palette"
)

// Because we don't need viper's mess for just storing configuration from
// a source.
type config struct {
	Main    configMain    `toml:"main"`
	Palette configPalette `toml:"palette"`
	Image   configImage   `toml:"image"`
	Drawing configDrawing `toml:"drawing"`
}

type configMain struct {
	LogLevel      string `toml:"log_level"`
	DevMode       bool   `toml:"dev_mode"`
	DataDirectory string `toml:"data_directory"`
}

type configPalette struct {
	Colors        []string `toml:"colors"`
	PositionsFile string   `toml:"positions_file"`
}

type configImage struct {
	Processor       string  `toml:"processor"`
	Dither          bool    `toml:"dither"`
	DitherFilter    string  `toml:"dither_filter"`
	ErrorMultiplier float64 `toml:"error_multiplier"`
	Stretch         bool    `toml:"stretch"`
}

type configDrawing struct {
	PixelInterval  int    `toml:"pixel_interval"`
	SegmentDelay   int    `toml:"segment_delay"`
	ColorDelay     int    `toml:"color_delay"`
	CancelListener string `toml:"cancel_listener"`
	CancelKey      string `toml:"cancel_key"`
}

// Config holds the configuration data from configuration files
// or flags.
//
// This variable sets some default values that might be overwritten
// by a configuration file.
var Config = config{
	Main: configMain{
		LogLevel:      "info",
		DevMode:       false,
		DataDirectory: "data",
	},
	Palette: configPalette{
		Colors:        palette.Default.Hex(),
		PositionsFile: "data/colors_pos.txt",
	},
	Image: configImage{
		Processor:       "native",
		DitherFilter:    img.DefaultDither,
		ErrorMultiplier: 1,
	},
	Drawing: configDrawing{
		PixelInterval:  2,
		SegmentDelay:   int(drawing.DefaultSegmentDelay / time.Millisecond),
		CancelListener: "hook",
		CancelKey:      "esc",
	},
}

// SegmentDelayDuration returns the configured pause after each segment.
func (c configDrawing) SegmentDelayDuration() time.Duration {
	return time.Duration(c.SegmentDelay) * time.Millisecond
}

// ColorDelayDuration returns the configured pause after a color
// selection.
func (c configDrawing) ColorDelayDuration() time.Duration {
	return time.Duration(c.ColorDelay) * time.Millisecond
}

// LoadConfiguration loads the configuration file.
func LoadConfiguration(configPath string) error {
	if configPath == "" {
		return nil
	}

	fd, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer fd.Close()

	dec := toml.NewDecoder(fd)
	if err := dec.Decode(&Config); err != nil {
		return err
	}

	return nil
}
