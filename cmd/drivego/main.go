package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/mbarbier/DriveGo/internal/auton"
	"github.com/mbarbier/DriveGo/internal/chassis"
	"github.com/mbarbier/DriveGo/internal/config"
	"github.com/mbarbier/DriveGo/internal/debug"
	"github.com/mbarbier/DriveGo/internal/hw/display"
	"github.com/mbarbier/DriveGo/internal/hw/gamepad"
	"github.com/mbarbier/DriveGo/internal/hw/gpio"
	"github.com/mbarbier/DriveGo/internal/hw/motor"
	"github.com/mbarbier/DriveGo/internal/teleop"
	"github.com/mbarbier/DriveGo/internal/web"
)

func main() {
	// CLI flags
	webPort := &webPortFlag{defaultPort: 8080}
	flag.Var(webPort, "web", "start dashboard on port; -web= for default 8080, -web 8980 for custom port")
	cfgPath := flag.String("config", filepath.Join("configs", "default.yaml"), "path to config file")
	mode := flag.String("mode", "teleop", "competition period to run: auton, teleop, or comp (auton then teleop)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	if *mode != "auton" && *mode != "teleop" && *mode != "comp" {
		log.Fatalf("invalid -mode %q (want auton, teleop or comp)", *mode)
	}

	// Initialize debug system
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Mode", *mode)
	debug.Value("Mock hardware", cfg.Defaults.MockHardware)

	// Initialize GPIO driver
	debug.Step(1, "Initializing GPIO driver")
	gpioDriver, err := gpio.NewDriver(cfg.Defaults.MockHardware)
	if err != nil {
		log.Fatalf("init GPIO failed: %v", err)
	}
	defer func() {
		if err := gpioDriver.Close(); err != nil {
			log.Printf("closing GPIO driver failed: %v", err)
		}
	}()

	// Build drivetrain and mechanisms
	debug.Step(2, "Initializing motors")
	drive := chassis.New(
		newMotor(gpioDriver, cfg.Drivetrain.LeftFront),
		newMotor(gpioDriver, cfg.Drivetrain.LeftBack),
		newMotor(gpioDriver, cfg.Drivetrain.RightFront),
		newMotor(gpioDriver, cfg.Drivetrain.RightBack),
		cfg.FullSpeedMps(),
	)
	debug.PrintStruct("Drivetrain config", cfg.Drivetrain)

	intake := teleop.NewMotorPair("intake",
		newMotor(gpioDriver, cfg.Intake.Left),
		newMotor(gpioDriver, cfg.Intake.Right))
	roller := teleop.NewMotorPair("roller",
		newMotor(gpioDriver, cfg.Roller.Left),
		newMotor(gpioDriver, cfg.Roller.Right))

	// Gamepad
	debug.Step(3, "Initializing gamepad")
	pad, closePad, err := newGamepad(cfg)
	if err != nil {
		log.Fatalf("init gamepad failed: %v", err)
	}
	defer closePad()

	// Optional web dashboard
	var handlers *web.Handlers
	if port := webPort.port(); port > 0 {
		feed := web.NewFeed()
		handlers = web.NewHandlers(feed, web.StaticFS())
		debug.SetOutput(io.MultiWriter(os.Stdout, web.LogWriter(feed)))

		srv := web.NewServer(fmt.Sprintf(":%d", port), handlers)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("dashboard: %v", err)
			}
		}()
	}

	// Status surface: console plus dashboard when enabled
	battery := display.NewBattery(cfg.Defaults.BatteryPath)
	disp := newStatusDisplay(handlers)

	routine := auton.New(drive, cfg.Auton)

	loop := teleop.NewLoop(teleop.Params{
		Pad:     pad,
		Drive:   drive,
		Intake:  intake,
		Roller:  roller,
		Display: disp,
		Auton:   routine.Run,
		Battery: battery.Percent,
		Tuning: teleop.Tuning{
			SlowDivisor: cfg.Tuning.SlowDivisor,
			YawDivisor:  cfg.Tuning.YawDivisor,
		},
		Deadband:     cfg.Tuning.Deadband,
		IntakePower:  cfg.Intake.Power,
		RollerPower:  cfg.Roller.Power,
		TickPeriod:   cfg.TickPeriod(),
		Debounce:     cfg.DebounceDelay(),
		RefreshTicks: cfg.Defaults.DisplayRefreshTicks,
	})

	// Hold the robot still when enabled
	drive.SetBrakeMode(motor.Hold)

	if *mode == "auton" || *mode == "comp" {
		if err := routine.Run(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Fatalf("autonomous failed: %v", err)
		}
		if *mode == "auton" {
			return
		}
	}

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("teleop failed: %v", err)
	}
}

// newMotor builds a motor from its wiring config.
func newMotor(g gpio.Driver, mc config.MotorConfig) *motor.Motor {
	return motor.New(g, motor.Config{
		PWMPin:   mc.PWMPin,
		DirPin:   mc.DirPin,
		BrakePin: mc.BrakePin,
		Reversed: mc.Reversed,
	})
}

// newGamepad opens the configured joystick, or a MockPad in mock mode.
func newGamepad(cfg *config.Config) (gamepad.Gamepad, func(), error) {
	if cfg.Defaults.MockHardware {
		debug.Info("Using MOCK gamepad (development mode)")
		return gamepad.NewMockPad(), func() {}, nil
	}
	js, err := gamepad.Open(cfg.Gamepad.Device, mappingFromConfig(cfg.Gamepad))
	if err != nil {
		return nil, nil, err
	}
	return js, func() { _ = js.Close() }, nil
}

// mappingFromConfig converts the YAML gamepad section into a joystick mapping.
func mappingFromConfig(gc config.GamepadConfig) gamepad.Mapping {
	return gamepad.Mapping{
		Buttons: map[gamepad.Button]uint8{
			gamepad.Y:  uint8(gc.ButtonY),
			gamepad.B:  uint8(gc.ButtonB),
			gamepad.A:  uint8(gc.ButtonA),
			gamepad.L1: uint8(gc.ButtonL1),
			gamepad.L2: uint8(gc.ButtonL2),
			gamepad.R1: uint8(gc.ButtonR1),
			gamepad.R2: uint8(gc.ButtonR2),
		},
		Axes: map[gamepad.Axis]uint8{
			gamepad.LeftX:  uint8(gc.AxisLeftX),
			gamepad.LeftY:  uint8(gc.AxisLeftY),
			gamepad.RightY: uint8(gc.AxisRightY),
		},
	}
}

// statusDisplay fans mode/battery updates out to the console and,
// when the dashboard is running, to its status endpoint and feed.
type statusDisplay struct {
	console  *display.Console
	handlers *web.Handlers
}

func newStatusDisplay(handlers *web.Handlers) *statusDisplay {
	return &statusDisplay{
		console:  display.NewConsole(nil),
		handlers: handlers,
	}
}

func (d *statusDisplay) ShowModes(drive, steer string) {
	d.console.ShowModes(drive, steer)
	if d.handlers != nil {
		d.handlers.SetModes(drive, steer)
	}
}

func (d *statusDisplay) ShowBattery(percent float64) {
	d.console.ShowBattery(percent)
	if d.handlers != nil {
		d.handlers.SetBattery(percent)
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
