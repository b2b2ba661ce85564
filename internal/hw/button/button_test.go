package button

import (
	"testing"

	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
)

func TestButton_Pressed(t *testing.T) {
	level := gpio.High
	drv := &gpio.MockDriver{ReadFunc: func(pin int) gpio.Level { return level }}
	b := New(drv, 17)

	pressed, err := b.Pressed()
	if err != nil {
		t.Fatalf("Pressed: %v", err)
	}
	if pressed {
		t.Error("line high should read as released (active low)")
	}

	level = gpio.Low
	pressed, _ = b.Pressed()
	if !pressed {
		t.Error("line low should read as pressed (active low)")
	}
}

func TestButton_PressedEdge(t *testing.T) {
	level := gpio.High
	drv := &gpio.MockDriver{ReadFunc: func(pin int) gpio.Level { return level }}
	b := New(drv, 17)

	// Released: no edge.
	if edge, _ := b.PressedEdge(); edge {
		t.Error("released line should not produce an edge")
	}

	// Press held across three polls: exactly one edge.
	level = gpio.Low
	edges := 0
	for i := 0; i < 3; i++ {
		if edge, _ := b.PressedEdge(); edge {
			edges++
		}
	}
	if edges != 1 {
		t.Errorf("held press produced %d edges, want 1", edges)
	}

	// Release then press again: a second edge.
	level = gpio.High
	if edge, _ := b.PressedEdge(); edge {
		t.Error("release should not produce an edge")
	}
	level = gpio.Low
	if edge, _ := b.PressedEdge(); !edge {
		t.Error("second press should produce an edge")
	}
}
