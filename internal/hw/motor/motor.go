package motor

import (
	"github.com/mbarbier/DriveGo/internal/debug"
	"github.com/mbarbier/DriveGo/internal/hw/gpio"
)

// BrakeMode selects what a motor does at zero power.
type BrakeMode int

const (
	// Coast lets the motor freewheel at zero power.
	Coast BrakeMode = iota
	// Hold engages the H-bridge brake at zero power (if a brake pin is wired).
	Hold
)

func (b BrakeMode) String() string {
	if b == Hold {
		return "hold"
	}
	return "coast"
}

// Config holds the hardware configuration for a DC motor on an H-bridge.
type Config struct {
	PWMPin    int
	DirPin    int
	BrakePin  int  // 0 = not wired. Active HIGH.
	Reversed  bool // flip direction polarity (e.g. right-side drive motors)
	PWMFreqHz int  // PWM frequency. If 0, defaults to 1000.
}

// Motor provides a simple signed-power API for one DC motor.
type Motor struct {
	gpio  gpio.Driver
	cfg   Config
	brake BrakeMode
}

// New creates a new motor controller and configures its pins.
func New(g gpio.Driver, cfg Config) *Motor {
	freq := cfg.PWMFreqHz
	if freq <= 0 {
		freq = 1000
	}
	cfg.PWMFreqHz = freq

	_ = g.SetupPWM(cfg.PWMPin, freq)
	_ = g.SetupPin(cfg.DirPin, gpio.Output)
	if cfg.BrakePin > 0 {
		_ = g.SetupPin(cfg.BrakePin, gpio.Output)
		_ = g.WritePin(cfg.BrakePin, gpio.Low) // brake released
	}

	return &Motor{
		gpio: g,
		cfg:  cfg,
	}
}

// SetBrakeMode selects the zero-power behavior. Takes effect on the
// next SetPower(0) or Stop call.
func (m *Motor) SetBrakeMode(b BrakeMode) {
	m.brake = b
}

// SetPower drives the motor at p in [-1, 1]; the sign selects direction.
// Out-of-range values are clamped.
func (m *Motor) SetPower(p float64) error {
	if p > 1 {
		p = 1
	}
	if p < -1 {
		p = -1
	}

	if p == 0 {
		return m.Stop()
	}

	// Release the brake before driving
	if m.cfg.BrakePin > 0 {
		if err := m.gpio.WritePin(m.cfg.BrakePin, gpio.Low); err != nil {
			return err
		}
	}

	forward := p > 0
	if m.cfg.Reversed {
		forward = !forward
	}
	dir := gpio.Low
	if forward {
		dir = gpio.High
	}
	if err := m.gpio.WritePin(m.cfg.DirPin, dir); err != nil {
		return err
	}

	duty := p
	if duty < 0 {
		duty = -duty
	}
	debug.Trace("Motor pwm=%d duty=%.3f", m.cfg.PWMPin, duty)
	return m.gpio.WritePWM(m.cfg.PWMPin, duty)
}

// Stop cuts PWM output and applies the brake when the mode is Hold.
func (m *Motor) Stop() error {
	if err := m.gpio.WritePWM(m.cfg.PWMPin, 0); err != nil {
		return err
	}
	if m.cfg.BrakePin > 0 {
		level := gpio.Low
		if m.brake == Hold {
			level = gpio.High
		}
		return m.gpio.WritePin(m.cfg.BrakePin, level)
	}
	return nil
}
