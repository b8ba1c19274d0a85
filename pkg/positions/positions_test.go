package positions

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawbot/drawbot/pkg/strokes"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		positions []strokes.Point
		text      string
	}{
		{"one", []strokes.Point{{X: 10, Y: 10}}, "10 10\n"},
		{"two", []strokes.Point{{X: 10, Y: 10}, {X: 20, Y: 20}}, "10 10\n20 20\n"},
		{"floats", []strokes.Point{{X: 12.5, Y: -3.25}, {X: 1e-7, Y: 1920}}, "12.5 -3.25\n1e-07 1920\n"},
		{"empty", []strokes.Point{}, ""},
	}

	for _, x := range tests {
		t.Run(x.name, func(t *testing.T) {
			name := filepath.Join(dir, x.name+".txt")
			require.NoError(t, Save(name, x.positions))

			data, err := os.ReadFile(name)
			require.NoError(t, err)
			assert.Equal(t, x.text, string(data))

			res, err := Load(name)
			require.NoError(t, err)
			assert.Equal(t, x.positions, res)
		})
	}

	t.Run("overwrite", func(t *testing.T) {
		name := filepath.Join(dir, "overwrite.txt")
		require.NoError(t, Save(name, []strokes.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}))
		require.NoError(t, Save(name, []strokes.Point{{X: 7, Y: 8}}))

		res, err := Load(name)
		require.NoError(t, err)
		assert.Equal(t, []strokes.Point{{X: 7, Y: 8}}, res)
	})

	t.Run("round trip", func(t *testing.T) {
		name := filepath.Join(dir, "round.txt")
		positions := make([]strokes.Point, 18)
		for i := range positions {
			positions[i] = strokes.Point{X: float64(i) / 3, Y: 1080 - float64(i)*7.1}
		}
		require.NoError(t, Save(name, positions))

		res, err := Load(name)
		require.NoError(t, err)
		assert.Equal(t, positions, res)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		res, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	tests := []struct {
		name string
		text string
		line int
		err  string
	}{
		{"one value", "10 10\n20\n", 2, `line 2: invalid position "20": expected two values`},
		{"three values", "10 10 10\n", 1, `line 1: invalid position "10 10 10": expected two values`},
		{"not a number", "10 10\n\n20 x\n", 3, `line 3: invalid position "20 x": strconv.ParseFloat: parsing "x": invalid syntax`},
	}

	for _, x := range tests {
		t.Run(x.name, func(t *testing.T) {
			res, err := Read(strings.NewReader(x.text))
			assert.Nil(t, res)
			assert.EqualError(t, err, x.err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, x.line, perr.Line)
		})
	}

	t.Run("numeric error", func(t *testing.T) {
		_, err := Read(strings.NewReader("1 NaNx\n"))
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("blank lines", func(t *testing.T) {
		res, err := Read(strings.NewReader("\n1 2\n  \n3\t4\n"))
		require.NoError(t, err)
		assert.Equal(t, []strokes.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, res)
	})
}
