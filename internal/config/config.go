package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cjeanneret/JoyGo/internal/logic/direction"
)

// SamplerConfig describes where the axis readings come from.
// Type selects a concrete implementation ("mcp3008", "hid" or "mock").
type SamplerConfig struct {
	Type     string `yaml:"type"`      // e.g., "mcp3008"
	XChannel int    `yaml:"x_channel"` // ADC channel for the X axis
	YChannel int    `yaml:"y_channel"` // ADC channel for the Y axis

	// MCP3008 bit-banged SPI wiring (BCM pin numbers).
	ClockPin int `yaml:"clock_pin"`
	CSPin    int `yaml:"cs_pin"`
	DInPin   int `yaml:"din_pin"`
	DOutPin  int `yaml:"dout_pin"`
	ClockNs  int `yaml:"clock_ns"` // SPI half-cycle in nanoseconds

	// HID sampler only: OS-assigned controller index.
	DeviceIndex int `yaml:"device_index"`
}

// DisplayConfig describes the attached character display.
// Type selects a concrete implementation ("hd44780" or "mock").
type DisplayConfig struct {
	Type     string `yaml:"type"`
	RSPin    int    `yaml:"rs_pin"`    // register select
	RWPin    int    `yaml:"rw_pin"`    // read/write (held low)
	ENPin    int    `yaml:"en_pin"`    // enable strobe
	DataPins []int  `yaml:"data_pins"` // DB0..DB7, exactly 8 pins

	EnablePulseMs  int `yaml:"enable_pulse_ms"`  // enable strobe width (ms)
	CommandDelayMs int `yaml:"command_delay_ms"` // settle time per byte (ms)
}

// ButtonConfig is optional: the joystick push switch. Pin 0 = absent.
type ButtonConfig struct {
	Pin int `yaml:"pin"`
}

// ThresholdConfig holds the zone boundaries, in raw 8-bit ADC units.
// An omitted or all-zero section falls back to the reference
// calibration.
type ThresholdConfig struct {
	CenterXMin            int  `yaml:"center_x_min"`
	CenterXMax            int  `yaml:"center_x_max"`
	CenterYMin            int  `yaml:"center_y_min"`
	CenterYMax            int  `yaml:"center_y_max"`
	ThresholdNorthY       int  `yaml:"threshold_north_y"`
	ThresholdSouthY       int  `yaml:"threshold_south_y"`
	ThresholdEastX        int  `yaml:"threshold_east_x"`
	ThresholdWestX        int  `yaml:"threshold_west_x"`
	DiagonalThresholdHigh int  `yaml:"diagonal_threshold_high"`
	DiagonalThresholdLow  int  `yaml:"diagonal_threshold_low"`
	CorrectedEastWest     bool `yaml:"corrected_east_west"`
}

// DefaultsConfig contains generic runtime parameters.
type DefaultsConfig struct {
	PollIntervalMs int    `yaml:"poll_interval_ms"` // delay between polls
	DisplayMode    string `yaml:"display_mode"`     // "direction" or "xy"
	DebugLevel     int    `yaml:"debug_level"`      // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	MockGPIO       bool   `yaml:"mock_gpio"`        // use mock hardware (true=dev/test, false=real Raspberry Pi)
}

// Config aggregates all application configuration.
type Config struct {
	Sampler    SamplerConfig   `yaml:"sampler"`
	Display    DisplayConfig   `yaml:"display"`
	Button     ButtonConfig    `yaml:"button"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Defaults   DefaultsConfig  `yaml:"defaults"`
}

// Load reads a YAML file and returns the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// Basic validation
	switch cfg.Sampler.Type {
	case "mcp3008", "hid", "mock":
	case "":
		return nil, fmt.Errorf("sampler.type is required")
	default:
		return nil, fmt.Errorf("unsupported sampler type: %s", cfg.Sampler.Type)
	}
	if cfg.Sampler.XChannel < 0 || cfg.Sampler.XChannel > 7 {
		return nil, fmt.Errorf("sampler.x_channel must be 0-7, got %d", cfg.Sampler.XChannel)
	}
	if cfg.Sampler.YChannel < 0 || cfg.Sampler.YChannel > 7 {
		return nil, fmt.Errorf("sampler.y_channel must be 0-7, got %d", cfg.Sampler.YChannel)
	}
	if cfg.Sampler.Type == "mcp3008" && cfg.Sampler.XChannel == cfg.Sampler.YChannel {
		return nil, fmt.Errorf("sampler X and Y channels must differ, both are %d", cfg.Sampler.XChannel)
	}
	if cfg.Sampler.ClockNs <= 0 {
		cfg.Sampler.ClockNs = 500 // MCP3008 tolerates a fast bit-banged clock
	}
	if cfg.Sampler.DeviceIndex <= 0 {
		cfg.Sampler.DeviceIndex = 1 // first controller the OS registered
	}

	switch cfg.Display.Type {
	case "hd44780":
		if len(cfg.Display.DataPins) != 8 {
			return nil, fmt.Errorf("display.data_pins must list exactly 8 pins (DB0..DB7), got %d", len(cfg.Display.DataPins))
		}
	case "mock":
	case "":
		return nil, fmt.Errorf("display.type is required")
	default:
		return nil, fmt.Errorf("unsupported display type: %s", cfg.Display.Type)
	}
	if cfg.Display.EnablePulseMs <= 0 {
		cfg.Display.EnablePulseMs = 10
	}
	if cfg.Display.CommandDelayMs <= 0 {
		cfg.Display.CommandDelayMs = 10
	}

	if cfg.Thresholds.isZero() {
		cfg.Thresholds = referenceThresholds(cfg.Thresholds.CorrectedEastWest)
	}
	if err := cfg.Thresholds.validate(); err != nil {
		return nil, err
	}

	if cfg.Defaults.PollIntervalMs <= 0 {
		cfg.Defaults.PollIntervalMs = 100 // reasonable default
	}
	switch cfg.Defaults.DisplayMode {
	case "":
		cfg.Defaults.DisplayMode = "direction"
	case "direction", "xy":
	default:
		return nil, fmt.Errorf("display_mode must be \"direction\" or \"xy\", got %q", cfg.Defaults.DisplayMode)
	}

	return &cfg, nil
}

// isZero reports whether every numeric boundary is unset (the section
// was omitted, or holds only the corrected_east_west flag).
func (t ThresholdConfig) isZero() bool {
	return t.CenterXMin == 0 && t.CenterXMax == 0 &&
		t.CenterYMin == 0 && t.CenterYMax == 0 &&
		t.ThresholdNorthY == 0 && t.ThresholdSouthY == 0 &&
		t.ThresholdEastX == 0 && t.ThresholdWestX == 0 &&
		t.DiagonalThresholdHigh == 0 && t.DiagonalThresholdLow == 0
}

// referenceThresholds is the stock joystick module calibration.
func referenceThresholds(corrected bool) ThresholdConfig {
	return ThresholdConfig{
		CenterXMin:            70,
		CenterXMax:            180,
		CenterYMin:            110,
		CenterYMax:            160,
		ThresholdNorthY:       240,
		ThresholdSouthY:       50,
		ThresholdEastX:        240,
		ThresholdWestX:        70,
		DiagonalThresholdHigh: 230,
		DiagonalThresholdLow:  50,
		CorrectedEastWest:     corrected,
	}
}

func (t ThresholdConfig) validate() error {
	fields := map[string]int{
		"center_x_min":            t.CenterXMin,
		"center_x_max":            t.CenterXMax,
		"center_y_min":            t.CenterYMin,
		"center_y_max":            t.CenterYMax,
		"threshold_north_y":       t.ThresholdNorthY,
		"threshold_south_y":       t.ThresholdSouthY,
		"threshold_east_x":        t.ThresholdEastX,
		"threshold_west_x":        t.ThresholdWestX,
		"diagonal_threshold_high": t.DiagonalThresholdHigh,
		"diagonal_threshold_low":  t.DiagonalThresholdLow,
	}
	for name, v := range fields {
		if v < 0 || v > 255 {
			return fmt.Errorf("thresholds.%s must be 0-255, got %d", name, v)
		}
	}
	if err := t.Directions().Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

// Directions converts the section into the classifier's value type.
// Call only after Load has validated the 0-255 range.
func (t ThresholdConfig) Directions() direction.Thresholds {
	return direction.Thresholds{
		CenterXMin:        uint8(t.CenterXMin),
		CenterXMax:        uint8(t.CenterXMax),
		CenterYMin:        uint8(t.CenterYMin),
		CenterYMax:        uint8(t.CenterYMax),
		NorthY:            uint8(t.ThresholdNorthY),
		SouthY:            uint8(t.ThresholdSouthY),
		EastX:             uint8(t.ThresholdEastX),
		WestX:             uint8(t.ThresholdWestX),
		DiagonalHigh:      uint8(t.DiagonalThresholdHigh),
		DiagonalLow:       uint8(t.DiagonalThresholdLow),
		CorrectedEastWest: t.CorrectedEastWest,
	}
}

// PollInterval returns the duration between two polls.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Defaults.PollIntervalMs) * time.Millisecond
}

// SPIClock returns the ADC SPI half-cycle duration.
func (c *Config) SPIClock() time.Duration {
	return time.Duration(c.Sampler.ClockNs) * time.Nanosecond
}

// EnablePulse returns the LCD enable strobe width.
func (c *Config) EnablePulse() time.Duration {
	return time.Duration(c.Display.EnablePulseMs) * time.Millisecond
}

// CommandDelay returns the settle time after each LCD byte.
func (c *Config) CommandDelay() time.Duration {
	return time.Duration(c.Display.CommandDelayMs) * time.Millisecond
}
