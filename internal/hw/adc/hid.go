package adc

import (
	"fmt"
	"sync"

	"github.com/splace/joysticks"

	"github.com/cjeanneret/JoyGo/internal/debug"
)

// HID samples a USB gamepad through the OS HID layer, for development
// off-target. The event pump runs in a goroutine and keeps the last
// completed axis pair; Sample returns it without blocking.
type HID struct {
	device *joysticks.HID

	mu   sync.Mutex
	x, y uint8

	done chan struct{}
}

// NewHID connects to the OS-assigned controller index (1 = first
// controller plugged in).
func NewHID(index int) (*HID, error) {
	device := joysticks.Connect(index)
	if device == nil {
		return nil, fmt.Errorf("no HID controller found at index %d", index)
	}

	debug.Info("Using HID controller %d as sampler", index)

	h := &HID{
		device: device,
		x:      128, // rest position until the first move event
		y:      128,
		done:   make(chan struct{}),
	}

	move := device.OnMove(1)
	go device.ParcelOutEvents()
	go func() {
		for {
			select {
			case ev := <-move:
				coords, ok := ev.(joysticks.CoordsEvent)
				if !ok {
					continue
				}
				h.mu.Lock()
				h.x = scaleAxis(coords.X)
				// HID Y grows downward; the joystick plane grows upward.
				h.y = scaleAxis(-coords.Y)
				h.mu.Unlock()
			case <-h.done:
				return
			}
		}
	}()

	return h, nil
}

// scaleAxis maps a HID coordinate in [-1, 1] to the 8-bit sample range.
func scaleAxis(v float32) uint8 {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	return uint8((float64(v) + 1) / 2 * 255)
}

func (h *HID) Sample() (uint8, uint8, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.x, h.y, nil
}

func (h *HID) Close() error {
	debug.Trace("ADC Close (HID)")
	close(h.done)
	return nil
}
