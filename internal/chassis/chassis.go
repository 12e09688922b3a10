package chassis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mbarbier/DriveGo/internal/debug"
	"github.com/mbarbier/DriveGo/internal/hw/motor"
)

// Chassis is a differential-drive model over four DC motors. It is the
// layer between the control logic (teleop mixer, autonomous routine)
// and the low-level motor/GPIO code.
type Chassis struct {
	left  [2]*motor.Motor
	right [2]*motor.Motor

	fullSpeedMps float64 // ground speed at 100% power
	maxOutput    float64 // velocity cap as a ratio (1 = full power)
}

// New creates a chassis from its four drive motors. fullSpeedMps is
// the ground speed at full power, derived from wheel size and free RPM.
func New(leftFront, leftBack, rightFront, rightBack *motor.Motor, fullSpeedMps float64) *Chassis {
	return &Chassis{
		left:         [2]*motor.Motor{leftFront, leftBack},
		right:        [2]*motor.Motor{rightFront, rightBack},
		fullSpeedMps: fullSpeedMps,
		maxOutput:    1,
	}
}

// SetBrakeMode sets the zero-power behavior on all drive motors.
func (c *Chassis) SetBrakeMode(b motor.BrakeMode) {
	for _, m := range c.motors() {
		m.SetBrakeMode(b)
	}
}

// SetMaxVelocity caps all subsequent output at pct percent of full
// power. Values outside 0-100 are clamped.
func (c *Chassis) SetMaxVelocity(pct float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	c.maxOutput = pct / 100
}

// Arcade drives from a forward power and a yaw power. Inputs below the
// deadband are treated as zero (joystick drift suppression). Wheel
// powers are normalized so neither side exceeds full power.
func (c *Chassis) Arcade(forward, yaw, deadband float64) error {
	forward = applyDeadband(clamp(forward), deadband)
	yaw = applyDeadband(clamp(yaw), deadband)

	left := forward + yaw
	right := forward - yaw

	// Preserve the turn ratio when the mix saturates
	if norm := math.Max(math.Abs(left), math.Abs(right)); norm > 1 {
		left /= norm
		right /= norm
	}

	debug.Drive("arcade", forward, yaw)
	return c.drive(left, right)
}

// Tank drives each side directly from its own power input.
func (c *Chassis) Tank(left, right float64) error {
	debug.Drive("tank", left, right)
	return c.drive(clamp(left), clamp(right))
}

// Stop cuts power to all drive motors.
func (c *Chassis) Stop() error {
	return c.drive(0, 0)
}

// MoveDistance drives straight for the given distance in meters
// (negative = backward) at the configured max velocity, open loop.
// It blocks until the move completes or ctx is cancelled; on
// cancellation the chassis is stopped before returning.
func (c *Chassis) MoveDistance(ctx context.Context, meters float64) error {
	if c.fullSpeedMps <= 0 {
		return fmt.Errorf("chassis full speed not configured")
	}
	if meters == 0 {
		return nil
	}
	if c.maxOutput <= 0 {
		return fmt.Errorf("max velocity is zero, cannot move")
	}

	// Full-scale input here; drive() applies the velocity cap.
	power := 1.0
	if meters < 0 {
		power = -1
	}
	duration := time.Duration(math.Abs(meters) / (c.fullSpeedMps * c.maxOutput) * float64(time.Second))

	debug.Live("MoveDistance: %.3fm at %.0f%% power (%.2fs)", meters, c.maxOutput*100, duration.Seconds())

	if err := c.drive(power, power); err != nil {
		return err
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-timer.C:
		return c.Stop()
	case <-ctx.Done():
		_ = c.Stop()
		return ctx.Err()
	}
}

func (c *Chassis) drive(left, right float64) error {
	left *= c.maxOutput
	right *= c.maxOutput
	for _, m := range c.left {
		if err := m.SetPower(left); err != nil {
			return err
		}
	}
	for _, m := range c.right {
		if err := m.SetPower(right); err != nil {
			return err
		}
	}
	return nil
}

func (c *Chassis) motors() []*motor.Motor {
	return []*motor.Motor{c.left[0], c.left[1], c.right[0], c.right[1]}
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func applyDeadband(v, deadband float64) float64 {
	if math.Abs(v) < deadband {
		return 0
	}
	return v
}
