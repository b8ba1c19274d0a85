package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		s        string
		expected Color
		err      bool
	}{
		{"#000000", Black, false},
		{"#ffffff", White, false},
		{"#0050cd", Color{0, 80, 205}, false},
		{"0050cd", Color{}, true},
		{"#zzzzzz", Color{}, true},
	}

	for _, x := range tests {
		t.Run(x.s, func(t *testing.T) {
			c, err := ParseHex(x.s)
			if x.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, x.expected, c)
			assert.Equal(t, x.s, c.Hex())
		})
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0.0, Distance(White, White))
	assert.Equal(t, 5.0, Distance(Color{0, 0, 0}, Color{3, 4, 0}))
	assert.InDelta(t, 441.67, Distance(Black, White), 0.01)
}

func TestNearest(t *testing.T) {
	p := Palette{Black, White, {255, 0, 0}}

	tests := []struct {
		name     string
		c        Color
		expected Color
	}{
		{"exact", Color{255, 0, 0}, Color{255, 0, 0}},
		{"dark", Color{20, 10, 30}, Black},
		{"light", Color{240, 230, 250}, White},
		{"reddish", Color{200, 40, 30}, Color{255, 0, 0}},
	}

	for _, x := range tests {
		t.Run(x.name, func(t *testing.T) {
			assert.Equal(t, x.expected, p.Nearest(x.c))
		})
	}

	t.Run("tie", func(t *testing.T) {
		p := Palette{{0, 0, 0}, {2, 0, 0}}
		assert.Equal(t, Color{0, 0, 0}, p.Nearest(Color{1, 0, 0}))

		p = Palette{{2, 0, 0}, {0, 0, 0}}
		assert.Equal(t, Color{2, 0, 0}, p.Nearest(Color{1, 0, 0}))
	})
}

func TestPalette(t *testing.T) {
	p, err := Parse([]string{"#000000", "#ffffff", "#ff0013"})
	require.NoError(t, err)
	assert.Equal(t, Palette{Black, White, {255, 0, 19}}, p)
	assert.Equal(t, []string{"#000000", "#ffffff", "#ff0013"}, p.Hex())

	assert.Equal(t, 1, p.Index(White))
	assert.Equal(t, -1, p.Index(Color{1, 2, 3}))
	assert.True(t, p.Contains(Black))

	cp := p.ColorPalette()
	assert.Len(t, cp, 3)
	assert.Equal(t, 2, cp.Index(color.RGBA{250, 0, 20, 255}))

	_, err = Parse([]string{"#000000", "nope"})
	assert.Error(t, err)

	assert.Len(t, Default, MaxColors)
}

func TestFromColor(t *testing.T) {
	assert.Equal(t, Color{1, 2, 3}, FromColor(color.RGBA{1, 2, 3, 255}))
	assert.Equal(t, White, FromColor(color.White))
	assert.Equal(t, Color{10, 20, 30}, FromColor(Color{10, 20, 30}))
}
