package poller

import (
	"context"
	"testing"
	"time"

	"github.com/cjeanneret/JoyGo/internal/hw/adc"
	"github.com/cjeanneret/JoyGo/internal/hw/button"
	"github.com/cjeanneret/JoyGo/internal/hw/display"
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
	"github.com/cjeanneret/JoyGo/internal/logic/direction"
)

type capturedEvent struct {
	x, y uint8
	dir  direction.Direction
}

type capturePublisher struct {
	events []capturedEvent
}

func (c *capturePublisher) PublishPosition(x, y uint8, d direction.Direction) {
	c.events = append(c.events, capturedEvent{x, y, d})
}

func newTestPoller(mode Mode) (*Poller, *adc.Static, *display.Mock) {
	sampler := adc.NewStatic(128, 128)
	screen := display.NewMock()
	p := New(sampler, screen, Params{
		Thresholds: direction.DefaultThresholds(),
		Mode:       mode,
		Interval:   time.Millisecond,
	})
	return p, sampler, screen
}

func TestPoller_DirectionHeader(t *testing.T) {
	p, _, screen := newTestPoller(ModeDirection)

	if err := p.DrawHeader(); err != nil {
		t.Fatalf("DrawHeader: %v", err)
	}
	if got := screen.Line(0); got != "Direction:" {
		t.Errorf("line 0 = %q, want %q", got, "Direction:")
	}
	if got := screen.Line(1); got != "C" {
		t.Errorf("line 1 = %q, want %q (rest position)", got, "C")
	}
}

func TestPoller_UpdatesOnDirectionChange(t *testing.T) {
	p, sampler, screen := newTestPoller(ModeDirection)
	if err := p.DrawHeader(); err != nil {
		t.Fatalf("DrawHeader: %v", err)
	}

	sampler.Set(255, 255)
	if err := p.RunOnce(); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if got := screen.Line(1); got != "NE" {
		t.Errorf("line 1 = %q, want NE", got)
	}

	sampler.Set(0, 0)
	if err := p.RunOnce(); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if got := screen.Line(1); got != "SW" {
		t.Errorf("line 1 = %q, want SW", got)
	}
}

func TestPoller_NoRedrawWhenDirectionStable(t *testing.T) {
	p, sampler, screen := newTestPoller(ModeDirection)
	if err := p.DrawHeader(); err != nil {
		t.Fatalf("DrawHeader: %v", err)
	}

	sampler.Set(255, 255)
	if err := p.RunOnce(); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	opsAfterChange := len(screen.Ops)

	// Same reading three more times: the display must stay untouched.
	for i := 0; i < 3; i++ {
		if err := p.RunOnce(); err != nil {
			t.Fatalf("RunOnce: %v", err)
		}
	}
	if len(screen.Ops) != opsAfterChange {
		t.Errorf("stable direction touched the display: %v", screen.Ops[opsAfterChange:])
	}
}

func TestPoller_XYMode(t *testing.T) {
	p, sampler, screen := newTestPoller(ModeXY)
	if err := p.DrawHeader(); err != nil {
		t.Fatalf("DrawHeader: %v", err)
	}
	if got := screen.Line(0); got != "X=    Y=" {
		t.Errorf("header = %q, want %q", got, "X=    Y=")
	}

	sampler.Set(42, 200)
	if err := p.RunOnce(); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if got := screen.Line(0); got != "X=42  Y=200" {
		t.Errorf("line 0 = %q, want %q", got, "X=42  Y=200")
	}

	// Shorter values overwrite stale digits.
	sampler.Set(7, 9)
	if err := p.RunOnce(); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if got := screen.Line(0); got != "X=7   Y=9" {
		t.Errorf("line 0 = %q, want %q", got, "X=7   Y=9")
	}
}

func TestPoller_ButtonTogglesMode(t *testing.T) {
	p, _, screen := newTestPoller(ModeDirection)
	if err := p.DrawHeader(); err != nil {
		t.Fatalf("DrawHeader: %v", err)
	}

	level := gpio.High
	drv := &gpio.MockDriver{ReadFunc: func(pin int) gpio.Level { return level }}
	p.AttachButton(button.New(drv, 17))

	// Press: direction -> xy, header redrawn.
	level = gpio.Low
	if err := p.RunOnce(); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if p.Mode() != ModeXY {
		t.Errorf("mode = %v, want xy after press", p.Mode())
	}
	if got := screen.Line(0); got[:2] != "X=" {
		t.Errorf("line 0 = %q, want xy header", got)
	}

	// Held button: no further toggle.
	if err := p.RunOnce(); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if p.Mode() != ModeXY {
		t.Errorf("mode = %v, held button must not toggle again", p.Mode())
	}

	// Release and press again: back to direction mode.
	level = gpio.High
	if err := p.RunOnce(); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	level = gpio.Low
	if err := p.RunOnce(); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if p.Mode() != ModeDirection {
		t.Errorf("mode = %v, want direction after second press", p.Mode())
	}
}

func TestPoller_PublishesEveryCycle(t *testing.T) {
	p, sampler, _ := newTestPoller(ModeDirection)
	pub := &capturePublisher{}
	p.AttachPublisher(pub)
	if err := p.DrawHeader(); err != nil {
		t.Fatalf("DrawHeader: %v", err)
	}

	sampler.Set(255, 255)
	for i := 0; i < 3; i++ {
		if err := p.RunOnce(); err != nil {
			t.Fatalf("RunOnce: %v", err)
		}
	}

	if len(pub.events) != 3 {
		t.Fatalf("published %d events, want 3 (every cycle, not just changes)", len(pub.events))
	}
	for _, ev := range pub.events {
		if ev.x != 255 || ev.y != 255 || ev.dir != direction.NorthEast {
			t.Errorf("event = %+v, want (255, 255, NorthEast)", ev)
		}
	}
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	p, sampler, screen := newTestPoller(ModeDirection)
	sampler.Set(0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := screen.Line(1); got != "SW" {
		t.Errorf("line 1 = %q, want SW after at least one cycle", got)
	}
}
