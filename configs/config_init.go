package configs

import (
	"os"
	"text/template"

	"github.com/Masterminds/sprig"

	"github.com/drawbot/drawbot/pkg/img"
)

const initialConfiguration = `[main]
log_level = {{ .Main.LogLevel | quote }}
dev_mode = {{ .Main.DevMode }}
data_directory = {{ .Main.DataDirectory | quote }}

[palette]
# Colors in swatch order, the same order as the recorded positions.
colors = {{ .Palette.Colors | toJson }}
positions_file = {{ .Palette.PositionsFile | quote }}

[image]
# Resize processor: native or bild
processor = {{ .Image.Processor | quote }}
dither = {{ .Image.Dither }}
# {{ .DitherNames | join ", " }}
dither_filter = {{ .Image.DitherFilter | quote }}
error_multiplier = {{ .Image.ErrorMultiplier | printf "%.2f" }}
stretch = {{ .Image.Stretch }}

[drawing]
pixel_interval = {{ .Drawing.PixelInterval }}
# Delays in milliseconds
segment_delay = {{ .Drawing.SegmentDelay }}
color_delay = {{ .Drawing.ColorDelay }}
# Cancel listener: hook (global hotkey) or term (terminal input)
cancel_listener = {{ .Drawing.CancelListener | quote }}
cancel_key = {{ .Drawing.CancelKey | lower | quote }}
`

type initialContext struct {
	config
	DitherNames []string
}

// WriteConfig writes configuration to a file.
func WriteConfig(filename string) error {
	tmpl, err := template.New("cfg").
		Funcs(sprig.TxtFuncMap()).
		Parse(initialConfiguration)
	if err != nil {
		return err
	}

	fd, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err = tmpl.Execute(fd, initialContext{Config, img.DitherNames()}); err != nil {
		defer fd.Close()
		return err
	}

	return fd.Close()
}
