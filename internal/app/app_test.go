package app

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/drawbot/drawbot/configs"
	"github.com/drawbot/drawbot/pkg/palette"
	"github.com/drawbot/drawbot/pkg/positions"
	"github.com/drawbot/drawbot/pkg/strokes"
)

// setup writes a configuration file in a temporary folder and
// restores the global state at the end of the test.
func setup(t *testing.T) string {
	dir := t.TempDir()
	defaults := configs.Config

	t.Cleanup(func() {
		configs.Config = defaults
		configPath = ""
		logLevel = ""
		drawFlags.imageFlags = imageFlags{}
		drawFlags.dryRun = ""
		previewFlags.imageFlags = imageFlags{}
		previewFlags.output = "preview.png"
		planFlags.imageFlags = imageFlags{}
		planFlags.dominant = 6
		positionsRecordCount = 0
		for _, c := range rootCmd.Commands() {
			c.Flags().VisitAll(func(f *pflag.Flag) {
				f.Changed = false
			})
		}
	})

	cfg := fmt.Sprintf(`[main]
data_directory = %q

[palette]
colors = ["#000000", "#ffffff", "#ff0013"]
positions_file = %q

[drawing]
pixel_interval = 1
`, dir, filepath.Join(dir, "positions.txt"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0600))

	// left half black, right half white
	m := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				m.Set(x, y, color.Black)
			} else {
				m.Set(x, y, color.White)
			}
		}
	}
	fd, err := os.Create(filepath.Join(dir, "image.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(fd, m))
	require.NoError(t, fd.Close())

	return dir
}

func execute(dir string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(append([]string{"-c", filepath.Join(dir, "config.toml")}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func decodePNG(t *testing.T, filename string) image.Image {
	fd, err := os.Open(filename)
	require.NoError(t, err)
	defer fd.Close()
	m, err := png.Decode(fd)
	require.NoError(t, err)
	return m
}

func TestPreview(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "preview.png")

	_, err := execute(dir, "preview", filepath.Join(dir, "image.png"), "--area", "0,0,20,20", "-o", out)
	require.NoError(t, err)

	m := decodePNG(t, out)
	assert.IsType(t, &image.Paletted{}, m)
	assert.Equal(t, image.Rect(0, 0, 20, 10), m.Bounds())
	assert.Equal(t, palette.Black, palette.FromColor(m.At(2, 2)))
	assert.Equal(t, palette.White, palette.FromColor(m.At(18, 2)))
}

func TestPlan(t *testing.T) {
	dir := setup(t)

	out, err := execute(dir, "plan", filepath.Join(dir, "image.png"), "--area", "0,0,20,10")
	require.NoError(t, err)
	assert.Contains(t, out, "20x10")
	assert.Contains(t, out, "#ff0013")
	assert.Contains(t, out, "dominant")
}

func TestDraw(t *testing.T) {
	t.Run("dry run", func(t *testing.T) {
		dir := setup(t)
		out := filepath.Join(dir, "canvas.png")

		_, err := execute(dir, "draw", filepath.Join(dir, "image.png"),
			"--area", "100,100,120,110", "--dry-run", out)
		require.NoError(t, err)

		m := decodePNG(t, out)
		assert.Equal(t, image.Rect(0, 0, 20, 10), m.Bounds())
		assert.Equal(t, palette.Black, palette.FromColor(m.At(2, 5)))
		assert.Equal(t, palette.White, palette.FromColor(m.At(17, 5)))
	})

	t.Run("no positions", func(t *testing.T) {
		dir := setup(t)
		_, err := execute(dir, "draw", filepath.Join(dir, "image.png"), "--area", "0,0,20,10")
		assert.ErrorIs(t, err, positions.ErrNotFound)
	})

	t.Run("no area", func(t *testing.T) {
		dir := setup(t)
		_, err := execute(dir, "draw", filepath.Join(dir, "image.png"))
		assert.EqualError(t, err, "missing --area")
	})

	t.Run("invalid interval", func(t *testing.T) {
		dir := setup(t)
		_, err := execute(dir, "draw", filepath.Join(dir, "image.png"),
			"--area", "0,0,20,10", "--interval", "-2", "--dry-run", filepath.Join(dir, "x.png"))
		assert.Error(t, err)
		assert.NoFileExists(t, filepath.Join(dir, "x.png"))
	})
}

func TestRequestFlags(t *testing.T) {
	defaults := configs.Config
	defer func() {
		configs.Config = defaults
	}()

	tests := []struct {
		name     string
		config   func()
		args     []string
		interval int
		dither   bool
		stretch  bool
	}{
		{"config", func() {}, nil, 2, false, false},
		{"config on", func() {
			configs.Config.Image.Dither = true
			configs.Config.Image.Stretch = true
		}, nil, 2, true, true},
		{"flags on", func() {}, []string{"--dither", "--stretch", "-i", "3"}, 3, true, true},
		{"flags off", func() {
			configs.Config.Image.Dither = true
			configs.Config.Image.Stretch = true
		}, []string{"--dither=false", "--stretch=false"}, 2, false, false},
		{"filter", func() {}, []string{"--filter", "Atkinson"}, 2, true, false},
		{"filter without dither", func() {}, []string{"--filter", "Atkinson", "--dither=false"}, 2, false, false},
	}

	for _, x := range tests {
		t.Run(x.name, func(t *testing.T) {
			configs.Config = defaults
			x.config()

			f := &imageFlags{}
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			f.register(fs)
			require.NoError(t, fs.Parse(append([]string{"--area", "0,0,10,10"}, x.args...)))

			r, err := f.request(fs, "image.png")
			require.NoError(t, err)
			assert.Equal(t, x.interval, r.Interval)
			assert.Equal(t, x.dither, r.Image.Dither)
			assert.Equal(t, x.stretch, r.Image.Stretch)
		})
	}
}

func TestPositionsShow(t *testing.T) {
	dir := setup(t)
	require.NoError(t, positions.Save(filepath.Join(dir, "positions.txt"), []strokes.Point{
		{X: 10, Y: 20}, {X: 30.5, Y: 20},
	}))

	out, err := execute(dir, "positions", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "#000000")
	assert.Contains(t, out, "(10, 20)")
	assert.Contains(t, out, "(30.5, 20)")
	assert.Contains(t, out, "missing")
}

func TestCreateConfigFile(t *testing.T) {
	defaults := configs.Config
	defer func() {
		configs.Config = defaults
	}()

	filename := filepath.Join(t.TempDir(), "conf", "config.toml")
	require.NoError(t, createConfigFile(filename))
	assert.FileExists(t, filename)
	require.NoError(t, configs.LoadConfiguration(filename))
	assert.Equal(t, defaults, configs.Config)

	// existing files are kept
	require.NoError(t, os.WriteFile(filename, []byte("[main]\n"), 0600))
	require.NoError(t, createConfigFile(filename))
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "[main]\n", string(data))
}

func TestEventLogFormatter(t *testing.T) {
	f := &eventLogFormatter{}
	entry := log.WithField("@id", "abc").WithFields(log.Fields{
		"colors":   2,
		"segments": 12,
	})
	entry.Message = "start"

	b, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(b), "abc")
	assert.Contains(t, string(b), "2 colors, 12 segments")
}
