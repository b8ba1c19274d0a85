// Package robot sends pointer events to the operating system.
package robot

import (
	"math"

	"github.com/go-vgo/robotgo"
)

// Pointer moves the system mouse pointer and presses its buttons.
type Pointer struct {
	// Button is the mouse button used to click and draw.
	Button string
}

// New returns a Pointer that draws with the left button.
func New() *Pointer {
	return &Pointer{Button: "left"}
}

// Move moves the pointer to the nearest pixel of x, y.
func (p *Pointer) Move(x, y float64) error {
	robotgo.Move(int(math.Round(x)), int(math.Round(y)))
	return nil
}

// Press presses the button.
func (p *Pointer) Press() error {
	return robotgo.Toggle(p.Button)
}

// Release releases the button.
func (p *Pointer) Release() error {
	return robotgo.Toggle(p.Button, "up")
}

