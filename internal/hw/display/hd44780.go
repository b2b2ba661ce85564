package display

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
)

// HD44780 command set (8-bit interface).
const (
	cmdFunctionSet = 0x38 // 8-bit bus, 2 lines, 5x7 font
	cmdDisplayOn   = 0x0E // display on, cursor on
	cmdClear       = 0x01
	cmdEntryMode   = 0x06 // increment cursor, no shift
	cmdLine1       = 0x80 // DDRAM address of line 1
	cmdLine2       = 0xC0 // DDRAM address of line 2
)

// Config holds the wiring and timing of an HD44780-compatible
// character display driven in 8-bit parallel mode.
type Config struct {
	RSPin    int    // register select
	RWPin    int    // read/write (held low, we only write)
	ENPin    int    // enable strobe
	DataPins [8]int // DB0..DB7

	EnablePulse  time.Duration // enable strobe width
	CommandDelay time.Duration // settle time after each command/data byte
}

// HD44780 drives the display pin by pin over a gpio.Driver.
// Not safe for concurrent use; the polling loop is single-threaded.
type HD44780 struct {
	gpio gpio.Driver
	cfg  Config
}

// NewHD44780 configures the control and data pins and runs the
// power-up initialization sequence: function set, display on, clear,
// entry mode.
func NewHD44780(g gpio.Driver, cfg Config) (*HD44780, error) {
	if cfg.EnablePulse <= 0 {
		cfg.EnablePulse = 10 * time.Millisecond
	}
	if cfg.CommandDelay <= 0 {
		cfg.CommandDelay = 10 * time.Millisecond
	}

	for _, pin := range []int{cfg.RSPin, cfg.RWPin, cfg.ENPin} {
		if err := g.SetupPin(pin, gpio.Output); err != nil {
			return nil, fmt.Errorf("setup LCD control pin %d: %w", pin, err)
		}
	}
	for _, pin := range cfg.DataPins {
		if err := g.SetupPin(pin, gpio.Output); err != nil {
			return nil, fmt.Errorf("setup LCD data pin %d: %w", pin, err)
		}
	}

	l := &HD44780{gpio: g, cfg: cfg}

	// Wait for the controller to power up before talking to it.
	time.Sleep(50 * time.Millisecond)

	for _, cmd := range []byte{cmdFunctionSet, cmdDisplayOn, cmdClear, cmdEntryMode, cmdLine1} {
		if err := l.Command(cmd); err != nil {
			return nil, fmt.Errorf("LCD init command 0x%02X: %w", cmd, err)
		}
	}

	return l, nil
}

// writeBus puts one byte on the 8 data lines, DB0 first.
func (l *HD44780) writeBus(b byte) error {
	for i, pin := range l.cfg.DataPins {
		level := gpio.Low
		if b&(1<<i) != 0 {
			level = gpio.High
		}
		if err := l.gpio.WritePin(pin, level); err != nil {
			return err
		}
	}
	return nil
}

// strobe pulses the enable line to latch whatever is on the bus.
func (l *HD44780) strobe() error {
	if err := l.gpio.WritePin(l.cfg.ENPin, gpio.High); err != nil {
		return err
	}
	time.Sleep(l.cfg.EnablePulse)
	if err := l.gpio.WritePin(l.cfg.ENPin, gpio.Low); err != nil {
		return err
	}
	time.Sleep(l.cfg.EnablePulse)
	return nil
}

// Command sends a command byte (RS low).
func (l *HD44780) Command(cmd byte) error {
	debug.LCD("command", cmd)
	if err := l.gpio.WritePin(l.cfg.RSPin, gpio.Low); err != nil {
		return err
	}
	if err := l.gpio.WritePin(l.cfg.RWPin, gpio.Low); err != nil {
		return err
	}
	if err := l.writeBus(cmd); err != nil {
		return err
	}
	if err := l.strobe(); err != nil {
		return err
	}
	time.Sleep(l.cfg.CommandDelay)
	return nil
}

// Data sends a character byte (RS high).
func (l *HD44780) Data(b byte) error {
	debug.LCD("data", b)
	if err := l.gpio.WritePin(l.cfg.RSPin, gpio.High); err != nil {
		return err
	}
	if err := l.gpio.WritePin(l.cfg.RWPin, gpio.Low); err != nil {
		return err
	}
	if err := l.writeBus(b); err != nil {
		return err
	}
	if err := l.strobe(); err != nil {
		return err
	}
	time.Sleep(l.cfg.CommandDelay)
	return nil
}

func (l *HD44780) Clear() error {
	if err := l.Command(cmdClear); err != nil {
		return err
	}
	// Clear needs extra settle time on top of the command delay.
	time.Sleep(2 * time.Millisecond)
	return nil
}

func (l *HD44780) SetCursor(row, col int) error {
	addr := byte(cmdLine1 + col)
	if row > 0 {
		addr = byte(cmdLine2 + col)
	}
	return l.Command(addr)
}

func (l *HD44780) Print(s string) error {
	for i := 0; i < len(s); i++ {
		if err := l.Data(s[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *HD44780) PrintInt(v int) error {
	return l.Print(strconv.Itoa(v))
}

// Close drops the control lines; the display keeps its last content.
func (l *HD44780) Close() error {
	debug.Trace("LCD Close")
	for _, pin := range []int{l.cfg.RSPin, l.cfg.RWPin, l.cfg.ENPin} {
		if err := l.gpio.WritePin(pin, gpio.Low); err != nil {
			return err
		}
	}
	return nil
}
