package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/cjeanneret/JoyGo/internal/config"
	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/adc"
	"github.com/cjeanneret/JoyGo/internal/hw/button"
	"github.com/cjeanneret/JoyGo/internal/hw/display"
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
	"github.com/cjeanneret/JoyGo/internal/logic/poller"
	"github.com/cjeanneret/JoyGo/internal/web"
)

func main() {
	// CLI flags
	webPort := &webPortFlag{defaultPort: 8080}
	flag.Var(webPort, "web", "start web server on port; -web= for default 8080, -web 8980 for custom port")
	cfgPath := flag.String("config", filepath.Join("configs", "default.yaml"), "path to config file")
	mode := flag.String("mode", "", "override display mode (direction or xy)")
	intervalMs := flag.Int("interval_ms", 0, "override poll interval in milliseconds")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// Validate CLI overrides (only non-zero values are applied; zero means "use config default")
	if err := validateCLIOverrides(*mode, *intervalMs); err != nil {
		log.Fatalf("invalid CLI override: %v", err)
	}
	applyOverrides(cfg, *mode, *intervalMs)

	// Initialize debug system
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)

	// Initialize GPIO driver
	debug.Value("Mock GPIO", cfg.Defaults.MockGPIO)
	debug.Step(1, "Initializing GPIO driver")
	gpioDriver, err := gpio.NewDriver(cfg.Defaults.MockGPIO)
	if err != nil {
		log.Fatalf("init GPIO failed: %v", err)
	}
	defer func() {
		if err := gpioDriver.Close(); err != nil {
			log.Printf("closing GPIO driver failed: %v", err)
		}
	}()

	// Initialize axis sampler
	debug.Step(2, "Initializing axis sampler")
	sampler, err := newSamplerFromConfig(cfg)
	if err != nil {
		log.Fatalf("init sampler failed: %v", err)
	}
	defer func() {
		if err := sampler.Close(); err != nil {
			log.Printf("closing sampler failed: %v", err)
		}
	}()
	debug.Value("Sampler type", cfg.Sampler.Type)
	debug.Value("X channel", cfg.Sampler.XChannel)
	debug.Value("Y channel", cfg.Sampler.YChannel)

	// Initialize display
	debug.Step(3, "Initializing display")
	screen, err := newDisplayFromConfig(gpioDriver, cfg)
	if err != nil {
		log.Fatalf("init display failed: %v", err)
	}
	defer func() {
		if err := screen.Close(); err != nil {
			log.Printf("closing display failed: %v", err)
		}
	}()
	debug.Value("Display type", cfg.Display.Type)

	// Assemble the polling loop
	debug.Step(4, "Creating poller")
	p := poller.New(sampler, screen, poller.Params{
		Thresholds: cfg.Thresholds.Directions(),
		Mode:       poller.Mode(cfg.Defaults.DisplayMode),
		Interval:   cfg.PollInterval(),
	})
	if cfg.Button.Pin > 0 {
		debug.Value("Button pin", cfg.Button.Pin)
		p.AttachButton(button.New(gpioDriver, cfg.Button.Pin))
	}

	if port := webPort.port(); port > 0 {
		webAddr := fmt.Sprintf(":%d", port)
		broadcaster := web.NewPositionBroadcaster()
		debug.SetOutput(io.MultiWriter(os.Stdout, web.BroadcastWriter(broadcaster)))
		p.AttachPublisher(broadcaster)

		srv := web.NewServer(webAddr, broadcaster, web.ClassifierConfig{
			Thresholds:     cfg.Thresholds.Directions(),
			PollIntervalMs: cfg.Defaults.PollIntervalMs,
			DisplayMode:    cfg.Defaults.DisplayMode,
		})

		// Poll loop in the background, web server in the foreground;
		// both stop on signal.
		pollErr := make(chan error, 1)
		go func() { pollErr <- p.Run(ctx) }()

		if err := srv.Run(ctx); err != nil {
			log.Fatalf("web server: %v", err)
		}
		if err := <-pollErr; err != nil {
			log.Fatalf("poll loop: %v", err)
		}
		return
	}

	if err := p.Run(ctx); err != nil {
		log.Fatalf("poll loop: %v", err)
	}
}

// validateCLIOverrides checks that non-zero CLI overrides are within valid ranges.
// Zero values are ignored (they mean "use config default").
func validateCLIOverrides(mode string, intervalMs int) error {
	switch mode {
	case "", "direction", "xy":
	default:
		return fmt.Errorf("mode must be \"direction\" or \"xy\", got %q", mode)
	}
	if intervalMs < 0 {
		return fmt.Errorf("interval_ms must be positive, got %d", intervalMs)
	}
	if intervalMs > 60000 {
		return fmt.Errorf("interval_ms must be at most 60000, got %d", intervalMs)
	}
	return nil
}

// applyOverrides mutates cfg with overrides. Only non-zero override values are applied.
func applyOverrides(cfg *config.Config, mode string, intervalMs int) {
	if mode != "" {
		cfg.Defaults.DisplayMode = mode
	}
	if intervalMs > 0 {
		cfg.Defaults.PollIntervalMs = intervalMs
	}
}

// webPortFlag implements flag.Value for -web: 0 = disabled, -web= or -web 8080 → 8080, -web 8980 → 8980.
type webPortFlag struct {
	val         int
	defaultPort int
}

func (w *webPortFlag) String() string {
	if w.val == 0 {
		return "0"
	}
	return strconv.Itoa(w.val)
}

func (w *webPortFlag) Set(s string) error {
	if s == "" {
		w.val = w.defaultPort
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 || v > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", v)
	}
	w.val = v
	return nil
}

func (w *webPortFlag) port() int { return w.val }

// newSamplerFromConfig selects a sampler implementation based on configuration.
// With mock GPIO the real ADC cannot exist, so the sampler is forced to
// a centered static source.
func newSamplerFromConfig(cfg *config.Config) (adc.Sampler, error) {
	if cfg.Defaults.MockGPIO || cfg.Sampler.Type == "mock" {
		return adc.NewStatic(128, 128), nil
	}
	switch cfg.Sampler.Type {
	case "mcp3008":
		return adc.NewMCP3008(adc.MCP3008Config{
			Clock:    cfg.SPIClock(),
			ClockPin: cfg.Sampler.ClockPin,
			CSPin:    cfg.Sampler.CSPin,
			DInPin:   cfg.Sampler.DInPin,
			DOutPin:  cfg.Sampler.DOutPin,
			XChannel: cfg.Sampler.XChannel,
			YChannel: cfg.Sampler.YChannel,
		})
	case "hid":
		return adc.NewHID(cfg.Sampler.DeviceIndex)
	default:
		return nil, fmt.Errorf("unsupported sampler type: %s", cfg.Sampler.Type)
	}
}

// newDisplayFromConfig selects a display implementation based on configuration.
func newDisplayFromConfig(g gpio.Driver, cfg *config.Config) (display.Display, error) {
	if cfg.Defaults.MockGPIO || cfg.Display.Type == "mock" {
		return display.NewMock(), nil
	}
	switch cfg.Display.Type {
	case "hd44780":
		var dataPins [8]int
		copy(dataPins[:], cfg.Display.DataPins)
		return display.NewHD44780(g, display.Config{
			RSPin:        cfg.Display.RSPin,
			RWPin:        cfg.Display.RWPin,
			ENPin:        cfg.Display.ENPin,
			DataPins:     dataPins,
			EnablePulse:  cfg.EnablePulse(),
			CommandDelay: cfg.CommandDelay(),
		})
	default:
		return nil, fmt.Errorf("unsupported display type: %s", cfg.Display.Type)
	}
}
