package teleop

import (
	"context"
	"time"

	"github.com/mbarbier/DriveGo/internal/debug"
	"github.com/mbarbier/DriveGo/internal/hw/display"
	"github.com/mbarbier/DriveGo/internal/hw/gamepad"
)

// Drive is the drivetrain surface the loop commands each tick.
type Drive interface {
	Arcade(forward, yaw, deadband float64) error
	Tank(left, right float64) error
	Stop() error
}

// Params wires a Loop to its hardware and tuning.
type Params struct {
	Pad     gamepad.Gamepad
	Drive   Drive
	Intake  Pair
	Roller  Pair
	Display display.Display

	// Auton runs the autonomous routine when the A button is
	// confirmed (manual trigger for practice runs). May be nil.
	Auton func(ctx context.Context) error

	// Battery returns the charge percent, or a negative value when
	// unavailable. May be nil.
	Battery func() float64

	Tuning       Tuning
	Deadband     float64
	IntakePower  float64       // intake power magnitude while a trigger is held
	RollerPower  float64       // roller power magnitude while a trigger is held
	TickPeriod   time.Duration // loop period (~10ms)
	Debounce     time.Duration // button resample delay
	RefreshTicks int           // display/battery cadence in ticks

	// Sleep is used for the debounce resample; nil means time.Sleep.
	// Tests inject a no-op.
	Sleep func(d time.Duration)
}

// Loop is the operator-control loop: it polls the gamepad once per
// tick and forwards scaled commands to the drivetrain and mechanisms.
// Mode state lives only for the duration of one Run.
type Loop struct {
	p Params

	speed SpeedMode
	steer SteerMode

	// edge tracking: a held toggle button fires once per press
	heldY bool
	heldB bool
	heldA bool

	count int
}

// NewLoop creates an operator-control loop in the default modes
// (fast, arcade).
func NewLoop(p Params) *Loop {
	if p.Sleep == nil {
		p.Sleep = time.Sleep
	}
	if p.RefreshTicks <= 0 {
		p.RefreshTicks = 25
	}
	return &Loop{p: p}
}

// SpeedMode returns the current drive-speed mode.
func (l *Loop) SpeedMode() SpeedMode { return l.speed }

// SteerMode returns the current steering scheme.
func (l *Loop) SteerMode() SteerMode { return l.steer }

// Run executes the loop at the configured tick period until ctx is
// cancelled. State is reset on entry and everything is stopped on the
// way out; a re-enabled robot starts fresh.
func (l *Loop) Run(ctx context.Context) error {
	l.reset()

	debug.Section("Operator Control")
	l.showModes()

	defer func() {
		_ = l.p.Drive.Stop()
		if l.p.Intake != nil {
			_ = l.p.Intake.Set(0)
		}
		if l.p.Roller != nil {
			_ = l.p.Roller.Set(0)
		}
	}()

	ticker := time.NewTicker(l.p.TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := l.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick runs one iteration: buttons, drive, mechanisms, display.
func (l *Loop) Tick(ctx context.Context) error {
	// Switch drivetrain speed mode
	if l.confirmedPress(gamepad.Y, &l.heldY) {
		l.speed = l.speed.Toggle()
		l.showModes()
	}

	// Switch steering scheme
	if l.confirmedPress(gamepad.B, &l.heldB) {
		l.steer = l.steer.Toggle()
		l.showModes()
	}

	// Manual autonomous trigger
	if l.confirmedPress(gamepad.A, &l.heldA) && l.p.Auton != nil {
		if err := l.p.Auton(ctx); err != nil {
			debug.Error(err)
		}
	}

	// Drive
	switch l.steer {
	case Arcade:
		forward, yaw := ArcadeMix(l.p.Pad.Analog(gamepad.LeftY), l.p.Pad.Analog(gamepad.LeftX), l.speed, l.p.Tuning)
		if err := l.p.Drive.Arcade(forward, yaw, l.p.Deadband); err != nil {
			return err
		}
	case Tank:
		left, right := TankMix(l.p.Pad.Analog(gamepad.LeftY), l.p.Pad.Analog(gamepad.RightY), l.speed, l.p.Tuning)
		if err := l.p.Drive.Tank(left, right); err != nil {
			return err
		}
	}

	// Mechanisms: forward trigger wins when both are held
	if l.p.Intake != nil {
		if err := l.p.Intake.Set(l.triggerPower(gamepad.L1, gamepad.L2, l.p.IntakePower)); err != nil {
			return err
		}
	}
	if l.p.Roller != nil {
		if err := l.p.Roller.Set(l.triggerPower(gamepad.R1, gamepad.R2, l.p.RollerPower)); err != nil {
			return err
		}
	}

	// Battery report on a fixed cadence
	if l.count%l.p.RefreshTicks == 0 && l.p.Battery != nil {
		l.p.Display.ShowBattery(l.p.Battery())
	}
	l.count++

	return nil
}

// confirmedPress implements debounce-by-resample: an observed press
// only counts if the button is still held after the debounce delay,
// and a held button fires once until released.
func (l *Loop) confirmedPress(b gamepad.Button, held *bool) bool {
	if !l.p.Pad.Digital(b) {
		*held = false
		return false
	}
	if *held {
		return false
	}
	l.p.Sleep(l.p.Debounce)
	if !l.p.Pad.Digital(b) {
		debug.Verbose("Button %s bounce rejected", b)
		return false
	}
	*held = true
	return true
}

func (l *Loop) triggerPower(forward, reverse gamepad.Button, power float64) float64 {
	switch {
	case l.p.Pad.Digital(forward):
		return power
	case l.p.Pad.Digital(reverse):
		return -power
	default:
		return 0
	}
}

func (l *Loop) reset() {
	l.speed = Fast
	l.steer = Arcade
	l.heldY, l.heldB, l.heldA = false, false, false
	l.count = 0
}

func (l *Loop) showModes() {
	l.p.Display.ShowModes(l.speed.String(), l.steer.String())
}
