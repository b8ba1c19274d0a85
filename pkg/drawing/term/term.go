// Package term watches the controlling terminal for a cancel key.
package term

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

// Cancel keys: Escape, Ctrl-C (raw mode turns it into a byte) and "q".
var defaultKeys = []byte{0x1b, 0x03, 'q'}

// Listener calls stop when one of its keys is typed on its input.
//
// Reading a terminal can't be interrupted, so a Listener owns one
// reader for its whole life. Bytes typed between two jobs are dropped
// when the next job starts listening.
type Listener struct {
	In   io.Reader
	Keys []byte

	once  sync.Once
	input chan byte
	err   error
}

// NewListener returns a Listener reading the standard input.
func NewListener() *Listener {
	return &Listener{In: os.Stdin, Keys: defaultKeys}
}

func (l *Listener) read() {
	defer close(l.input)
	b := make([]byte, 1)
	for {
		if _, err := l.In.Read(b); err != nil {
			l.err = err
			return
		}
		l.input <- b[0]
	}
}

func (l *Listener) isKey(b byte) bool {
	for _, k := range l.Keys {
		if k == b {
			return true
		}
	}
	return false
}

// Listen implements drawing.Listener. When the input is a terminal,
// it's put in raw mode until ctx is done.
func (l *Listener) Listen(ctx context.Context, ready func(), stop func()) error {
	if f, ok := l.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return err
		}
		defer term.Restore(int(f.Fd()), state) //nolint:errcheck
		rawMode.Store(true)
		defer rawMode.Store(false)
	}

	l.once.Do(func() {
		l.input = make(chan byte, 16)
		go l.read()
	})

	// Drop what was typed before this job
	for drained := false; !drained; {
		select {
		case _, ok := <-l.input:
			if !ok && l.err != io.EOF {
				return l.err
			}
			drained = !ok
		default:
			drained = true
		}
	}
	ready()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-l.input:
			if !ok {
				if l.err == io.EOF {
					// No more input, wait for the job end.
					<-ctx.Done()
					return nil
				}
				return l.err
			}
			if l.isKey(b) {
				stop()
			}
		}
	}
}

// rawMode is set while a Listener holds the terminal in raw mode.
var rawMode atomic.Bool

// Writer turns line feeds into CRLF while a Listener holds the
// terminal in raw mode, where the terminal doesn't return to the
// first column on its own.
type Writer struct {
	W io.Writer
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{W: w}
}

func (w *Writer) Write(p []byte) (int, error) {
	if !rawMode.Load() {
		return w.W.Write(p)
	}
	if _, err := w.W.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
