package button

import (
	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
)

// Button reads the joystick's push switch. The line is wired active
// low: the internal pull-up keeps it high until the stick is pressed
// down.
type Button struct {
	gpio gpio.Driver
	pin  int
	held bool
}

// New configures the pin as a pulled-up input.
func New(g gpio.Driver, pin int) *Button {
	_ = g.SetupPin(pin, gpio.InputPullup)
	return &Button{gpio: g, pin: pin}
}

// Pressed reports whether the switch is held down right now.
func (b *Button) Pressed() (bool, error) {
	level, err := b.gpio.ReadPin(b.pin)
	if err != nil {
		return false, err
	}
	return level == gpio.Low, nil
}

// PressedEdge reports a released-to-pressed transition since the
// previous call. One physical press yields one edge no matter how many
// polls it spans; no debounce, the poll interval is slow enough.
func (b *Button) PressedEdge() (bool, error) {
	pressed, err := b.Pressed()
	if err != nil {
		return false, err
	}
	edge := pressed && !b.held
	b.held = pressed
	if edge {
		debug.Live("Button pressed (pin %d)", b.pin)
	}
	return edge, nil
}
