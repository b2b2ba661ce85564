package adc

import (
	"fmt"
	"time"

	"github.com/warthog618/gpio"
	"github.com/warthog618/gpio/spi/mcp3w0c"

	"github.com/cjeanneret/JoyGo/internal/debug"
)

// MCP3008Config holds the wiring of the ADC chip: bit-banged SPI pins
// (BCM numbering) plus the channels the two potentiometers sit on.
type MCP3008Config struct {
	Clock    time.Duration // half-cycle between SPI clock edges
	ClockPin int
	CSPin    int
	DInPin   int
	DOutPin  int
	XChannel int
	YChannel int
}

// MCP3008 reads the joystick potentiometers through an MCP3008 ADC on
// bit-banged SPI. The Raspberry Pi has no on-chip ADC, so the analog
// axes go through this chip. Each Sample blocks for two conversions.
type MCP3008 struct {
	adc      *mcp3w0c.MCP3w0c
	xChannel int
	yChannel int
}

// NewMCP3008 memory-maps the GPIO registers and sets up the SPI lines.
func NewMCP3008(cfg MCP3008Config) (*MCP3008, error) {
	if cfg.XChannel < 0 || cfg.XChannel > 7 || cfg.YChannel < 0 || cfg.YChannel > 7 {
		return nil, fmt.Errorf("ADC channels must be 0-7, got x=%d y=%d", cfg.XChannel, cfg.YChannel)
	}
	if err := gpio.Open(); err != nil {
		return nil, fmt.Errorf("open GPIO for ADC: %w", err)
	}

	clock := cfg.Clock
	if clock <= 0 {
		clock = 500 * time.Nanosecond
	}

	debug.Info("Initializing MCP3008 ADC (clk=%d cs=%d din=%d dout=%d)",
		cfg.ClockPin, cfg.CSPin, cfg.DInPin, cfg.DOutPin)

	return &MCP3008{
		adc:      mcp3w0c.NewMCP3008(clock, cfg.ClockPin, cfg.CSPin, cfg.DInPin, cfg.DOutPin),
		xChannel: cfg.XChannel,
		yChannel: cfg.YChannel,
	}, nil
}

// Sample performs one conversion per axis and scales the 10-bit
// results down to 8 bits.
func (m *MCP3008) Sample() (uint8, uint8, error) {
	rawX := m.adc.Read(m.xChannel)
	rawY := m.adc.Read(m.yChannel)

	x := scale10to8(rawX)
	y := scale10to8(rawY)
	debug.ADC(m.xChannel, rawX, x)
	debug.ADC(m.yChannel, rawY, y)

	return x, y, nil
}

func (m *MCP3008) Close() error {
	debug.Trace("ADC Close (MCP3008)")
	m.adc.Close()
	return gpio.Close()
}
