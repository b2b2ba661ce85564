package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/adc"
	"github.com/cjeanneret/JoyGo/internal/hw/button"
	"github.com/cjeanneret/JoyGo/internal/hw/display"
	"github.com/cjeanneret/JoyGo/internal/logic/direction"
)

// Mode selects what the display shows each cycle.
type Mode string

const (
	ModeDirection Mode = "direction" // direction label, redrawn on change
	ModeXY        Mode = "xy"        // raw X/Y coordinates, redrawn every cycle
)

// Publisher receives one event per completed poll cycle. The web layer
// implements it; a nil Publisher disables publication.
type Publisher interface {
	PublishPosition(x, y uint8, d direction.Direction)
}

// Params defines the parameters for a polling run.
type Params struct {
	Thresholds direction.Thresholds
	Mode       Mode
	Interval   time.Duration // delay between polls
}

// Poller contains the high-level loop: sample the axes, classify the
// pair, render the result. One cycle per tick, fully synchronous.
type Poller struct {
	sampler adc.Sampler
	display display.Display
	button  *button.Button // optional mode toggle
	pub     Publisher      // optional event sink

	params Params
	mode   Mode

	lastDir direction.Direction
}

func New(s adc.Sampler, d display.Display, p Params) *Poller {
	if p.Mode == "" {
		p.Mode = ModeDirection
	}
	if p.Interval <= 0 {
		p.Interval = 100 * time.Millisecond
	}
	return &Poller{
		sampler: s,
		display: d,
		params:  p,
		mode:    p.Mode,
	}
}

// AttachButton wires the joystick push switch as a mode toggle.
func (p *Poller) AttachButton(b *button.Button) {
	p.button = b
}

// AttachPublisher wires a per-cycle event sink.
func (p *Poller) AttachPublisher(pub Publisher) {
	p.pub = pub
}

// Mode returns the active display mode.
func (p *Poller) Mode() Mode {
	return p.mode
}

// DrawHeader lays out the static parts of the screen for the active
// mode and resets the change tracking.
func (p *Poller) DrawHeader() error {
	if err := p.display.Clear(); err != nil {
		return err
	}
	switch p.mode {
	case ModeXY:
		return p.display.Print("X=    Y=")
	default:
		if err := p.display.Print("Direction:"); err != nil {
			return err
		}
		if err := p.display.SetCursor(1, 0); err != nil {
			return err
		}
		p.lastDir = direction.Center
		return p.display.Print(p.lastDir.Label())
	}
}

// RunOnce performs a single poll cycle: button edge, sample, classify,
// render, publish.
func (p *Poller) RunOnce() error {
	if p.button != nil {
		pressed, err := p.button.PressedEdge()
		if err != nil {
			return fmt.Errorf("read button: %w", err)
		}
		if pressed {
			if err := p.toggleMode(); err != nil {
				return err
			}
		}
	}

	x, y, err := p.sampler.Sample()
	if err != nil {
		return fmt.Errorf("sample axes: %w", err)
	}
	debug.Sample(x, y)

	dir := direction.Classify(x, y, p.params.Thresholds)

	switch p.mode {
	case ModeXY:
		if err := p.renderXY(x, y); err != nil {
			return err
		}
	default:
		// Only touch the display when the direction changed.
		if dir != p.lastDir {
			debug.Direction(dir.String(), dir.Label())
			if err := p.renderDirection(dir); err != nil {
				return err
			}
			p.lastDir = dir
		}
	}

	if p.pub != nil {
		p.pub.PublishPosition(x, y, dir)
	}
	return nil
}

// Run polls at the configured interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	debug.Section("Starting Poll Loop")
	debug.Value("Mode", string(p.mode))
	debug.Value("Interval", p.params.Interval)

	if err := p.DrawHeader(); err != nil {
		return fmt.Errorf("draw header: %w", err)
	}

	ticker := time.NewTicker(p.params.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			debug.Section("Poll Loop Stopped")
			return nil
		case <-ticker.C:
			if err := p.RunOnce(); err != nil {
				return err
			}
		}
	}
}

func (p *Poller) toggleMode() error {
	if p.mode == ModeDirection {
		p.mode = ModeXY
	} else {
		p.mode = ModeDirection
	}
	debug.Live("Display mode: %s", p.mode)
	return p.DrawHeader()
}

// renderDirection clears the label area on line 2 and writes the new
// label.
func (p *Poller) renderDirection(d direction.Direction) error {
	if err := p.display.SetCursor(1, 0); err != nil {
		return err
	}
	if err := p.display.Print("   "); err != nil {
		return err
	}
	if err := p.display.SetCursor(1, 0); err != nil {
		return err
	}
	return p.display.Print(d.Label())
}

// renderXY rewrites both coordinate fields ("X=nnn Y=nnn").
func (p *Poller) renderXY(x, y uint8) error {
	if err := p.display.SetCursor(0, 2); err != nil {
		return err
	}
	if err := p.display.Print("   "); err != nil {
		return err
	}
	if err := p.display.SetCursor(0, 2); err != nil {
		return err
	}
	if err := p.display.PrintInt(int(x)); err != nil {
		return err
	}

	if err := p.display.SetCursor(0, 8); err != nil {
		return err
	}
	if err := p.display.Print("   "); err != nil {
		return err
	}
	if err := p.display.SetCursor(0, 8); err != nil {
		return err
	}
	return p.display.PrintInt(int(y))
}
