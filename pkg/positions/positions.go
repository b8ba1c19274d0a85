// Package positions stores the screen position of every palette
// swatch in a plain text file, one "x y" line per palette slot.
package positions

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/drawbot/drawbot/pkg/strokes"
)

// ErrNotFound is returned by Load when the file does not exist.
// It wraps os.ErrNotExist.
var ErrNotFound = fmt.Errorf("no saved positions: %w", os.ErrNotExist)

// ParseError is returned when a line of the file is malformed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid position %q: %s", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errTokenCount = errors.New("expected two values")

// Save writes the positions to a file, replacing its content.
func Save(filename string, positions []strokes.Point) error {
	fd, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err = Write(fd, positions); err != nil {
		defer fd.Close()
		return err
	}

	return fd.Close()
}

// Write writes the positions to w.
func Write(w io.Writer, positions []strokes.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range positions {
		if _, err := fmt.Fprintf(bw, "%s %s\n", formatFloat(p.X), formatFloat(p.Y)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load reads the positions saved in a file. When the file does not
// exist, it returns ErrNotFound.
func Load(filename string) ([]strokes.Point, error) {
	fd, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer fd.Close()

	return Read(fd)
}

// Read reads positions from r. Blank lines are ignored, any other
// malformed line stops the reading with a *ParseError.
func Read(r io.Reader) ([]strokes.Point, error) {
	res := []strokes.Point{}
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &ParseError{n, line, errTokenCount}
		}

		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &ParseError{n, line, err}
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &ParseError{n, line, err}
		}
		res = append(res, strokes.Point{X: x, Y: y})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
