// Package relay drives the amplifier power relay through the sysfs GPIO
// interface, degrading to a state-tracking mock when the hardware is absent.
package relay

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const gpioRoot = "/sys/class/gpio"

type Config struct {
	Enabled    bool
	Pin        int
	ActiveHigh bool
}

// Controller tracks the last commanded state; it never senses the line.
type Controller struct {
	cfg       Config
	enabled   bool
	valuePath string
	lastHigh  *bool
}

func New(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	if !cfg.Enabled {
		log.Println("🔌 RelayController running in mock mode")
		return c
	}
	if err := c.setup(); err != nil {
		log.Printf("⚠️ Relay GPIO unavailable (%v), falling back to mock mode", err)
		return c
	}
	c.enabled = true
	// Known safe state on startup.
	c.PowerOff()
	return c
}

func (c *Controller) setup() error {
	pinDir := filepath.Join(gpioRoot, fmt.Sprintf("gpio%d", c.cfg.Pin))
	if _, err := os.Stat(pinDir); os.IsNotExist(err) {
		if err := os.WriteFile(filepath.Join(gpioRoot, "export"), []byte(strconv.Itoa(c.cfg.Pin)), 0o644); err != nil {
			return fmt.Errorf("export pin %d: %w", c.cfg.Pin, err)
		}
	}
	if err := os.WriteFile(filepath.Join(pinDir, "direction"), []byte("out"), 0o644); err != nil {
		return fmt.Errorf("set direction: %w", err)
	}
	c.valuePath = filepath.Join(pinDir, "value")
	return nil
}

// write drives the physical line. Failures are logged and the commanded state
// is still recorded so daemon logic stays consistent.
func (c *Controller) write(high bool) {
	if c.enabled {
		value := "0"
		if high {
			value = "1"
		}
		if err := os.WriteFile(c.valuePath, []byte(value), 0o644); err != nil {
			log.Printf("❌ Relay write failed: %v", err)
		}
	}
	state := high
	c.lastHigh = &state
}

func (c *Controller) PowerOn() {
	c.write(c.cfg.ActiveHigh)
}

func (c *Controller) PowerOff() {
	c.write(!c.cfg.ActiveHigh)
}

// IsPowerOn reports the last commanded logical state, not physical sensing.
func (c *Controller) IsPowerOn() bool {
	return c.lastHigh != nil && *c.lastHigh == c.cfg.ActiveHigh
}

// Cleanup releases the pin on shutdown.
func (c *Controller) Cleanup() {
	if !c.enabled {
		return
	}
	if err := os.WriteFile(filepath.Join(gpioRoot, "unexport"), []byte(strconv.Itoa(c.cfg.Pin)), 0o644); err != nil {
		log.Printf("⚠️ Relay unexport failed: %v", err)
	}
}
