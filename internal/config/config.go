package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MotorConfig holds the wiring for one DC motor on an H-bridge.
type MotorConfig struct {
	PWMPin   int  `yaml:"pwm_pin"`
	DirPin   int  `yaml:"dir_pin"`
	BrakePin int  `yaml:"brake_pin"` // 0 = not wired. Active HIGH.
	Reversed bool `yaml:"reversed"`  // flip the direction pin polarity
}

// DrivetrainConfig holds the four drive motors and the robot geometry.
// Right-side motors are typically marked reversed so positive power
// means forward on both sides.
type DrivetrainConfig struct {
	LeftFront  MotorConfig `yaml:"left_front"`
	LeftBack   MotorConfig `yaml:"left_back"`
	RightFront MotorConfig `yaml:"right_front"`
	RightBack  MotorConfig `yaml:"right_back"`

	WheelDiameterMm float64 `yaml:"wheel_diameter_mm"` // e.g. 88.9 for 3.5"
	TrackWidthMm    float64 `yaml:"track_width_mm"`    // e.g. 165.1 for 6.5"
	FreeRPM         float64 `yaml:"free_rpm"`          // wheel RPM at full power
}

// MechanismConfig describes a paired mechanism (two mirrored motors).
type MechanismConfig struct {
	Left  MotorConfig `yaml:"left"`
	Right MotorConfig `yaml:"right"`
	Power float64     `yaml:"power"` // magnitude applied while a trigger is held (0-1)
}

// GamepadConfig maps named buttons and axes to Linux joystick numbers.
type GamepadConfig struct {
	Device string `yaml:"device"` // e.g. /dev/input/js0

	ButtonY  int `yaml:"button_y"`
	ButtonB  int `yaml:"button_b"`
	ButtonA  int `yaml:"button_a"`
	ButtonL1 int `yaml:"button_l1"`
	ButtonL2 int `yaml:"button_l2"`
	ButtonR1 int `yaml:"button_r1"`
	ButtonR2 int `yaml:"button_r2"`

	AxisLeftX  int `yaml:"axis_left_x"`
	AxisLeftY  int `yaml:"axis_left_y"`
	AxisRightY int `yaml:"axis_right_y"`
}

// TuningConfig holds the drive-feel constants. The source program
// hardcoded two inconsistent sets of these; here they are configuration.
type TuningConfig struct {
	SlowDivisor float64 `yaml:"slow_divisor"` // slow mode divides input by this (default 4)
	YawDivisor  float64 `yaml:"yaw_divisor"`  // fast-mode yaw softening (default 1.5)
	Deadband    float64 `yaml:"deadband"`     // arcade drift suppression (default 0.15)
}

// AutonConfig parameterizes the scripted autonomous routine.
type AutonConfig struct {
	MaxVelocityPct float64 `yaml:"max_velocity_pct"` // output cap during auton (default 50)
	MoveDistanceM  float64 `yaml:"move_distance_m"`  // forward move length (default 0.1)
}

// DefaultsConfig contains generic runtime parameters.
type DefaultsConfig struct {
	TickMs              int    `yaml:"tick_ms"`               // teleop loop period (default 10)
	DebounceMs          int    `yaml:"debounce_ms"`           // button resample delay (default 50)
	DisplayRefreshTicks int    `yaml:"display_refresh_ticks"` // battery/status cadence (default 25)
	BatteryPath         string `yaml:"battery_path"`          // sysfs capacity file, empty = unavailable
	DebugLevel          int    `yaml:"debug_level"`           // 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	MockHardware        bool   `yaml:"mock_hardware"`         // use mock GPIO/gamepad (true=dev/test)
}

// Config aggregates all application configuration.
type Config struct {
	Drivetrain DrivetrainConfig `yaml:"drivetrain"`
	Intake     MechanismConfig  `yaml:"intake"`
	Roller     MechanismConfig  `yaml:"roller"`
	Gamepad    GamepadConfig    `yaml:"gamepad"`
	Tuning     TuningConfig     `yaml:"tuning"`
	Auton      AutonConfig      `yaml:"auton"`
	Defaults   DefaultsConfig   `yaml:"defaults"`
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
	for _, m := range []struct {
		name string
		mc   MotorConfig
	}{
		{"drivetrain.left_front", cfg.Drivetrain.LeftFront},
		{"drivetrain.left_back", cfg.Drivetrain.LeftBack},
		{"drivetrain.right_front", cfg.Drivetrain.RightFront},
		{"drivetrain.right_back", cfg.Drivetrain.RightBack},
	} {
		if m.mc.PWMPin <= 0 || m.mc.DirPin <= 0 {
			return nil, fmt.Errorf("%s: pwm_pin and dir_pin are required", m.name)
		}
	}

	if cfg.Drivetrain.WheelDiameterMm <= 0 {
		cfg.Drivetrain.WheelDiameterMm = 88.9 // 3.5" wheels
	}
	if cfg.Drivetrain.TrackWidthMm <= 0 {
		cfg.Drivetrain.TrackWidthMm = 165.1 // 6.5" wheelbase
	}
	if cfg.Drivetrain.FreeRPM <= 0 {
		cfg.Drivetrain.FreeRPM = 200 // green cartridge equivalent
	}

	if cfg.Intake.Power == 0 {
		cfg.Intake.Power = 1.0
	}
	if cfg.Roller.Power == 0 {
		cfg.Roller.Power = 1.0
	}
	if cfg.Intake.Power < 0 || cfg.Intake.Power > 1 {
		return nil, fmt.Errorf("intake.power must be between 0 and 1, got %.2f", cfg.Intake.Power)
	}
	if cfg.Roller.Power < 0 || cfg.Roller.Power > 1 {
		return nil, fmt.Errorf("roller.power must be between 0 and 1, got %.2f", cfg.Roller.Power)
	}

	if cfg.Tuning.SlowDivisor == 0 {
		cfg.Tuning.SlowDivisor = 4
	}
	if cfg.Tuning.YawDivisor == 0 {
		cfg.Tuning.YawDivisor = 1.5
	}
	if cfg.Tuning.SlowDivisor < 1 {
		return nil, fmt.Errorf("tuning.slow_divisor must be >= 1, got %.2f", cfg.Tuning.SlowDivisor)
	}
	if cfg.Tuning.YawDivisor < 1 {
		return nil, fmt.Errorf("tuning.yaw_divisor must be >= 1, got %.2f", cfg.Tuning.YawDivisor)
	}
	if cfg.Tuning.Deadband == 0 {
		cfg.Tuning.Deadband = 0.15
	}
	if cfg.Tuning.Deadband < 0 || cfg.Tuning.Deadband >= 1 {
		return nil, fmt.Errorf("tuning.deadband must be in [0, 1), got %.2f", cfg.Tuning.Deadband)
	}

	if cfg.Auton.MaxVelocityPct == 0 {
		cfg.Auton.MaxVelocityPct = 50
	}
	if cfg.Auton.MaxVelocityPct < 0 || cfg.Auton.MaxVelocityPct > 100 {
		return nil, fmt.Errorf("auton.max_velocity_pct must be between 0 and 100, got %.2f", cfg.Auton.MaxVelocityPct)
	}
	if cfg.Auton.MoveDistanceM == 0 {
		cfg.Auton.MoveDistanceM = 0.1
	}

	if cfg.Defaults.TickMs <= 0 {
		cfg.Defaults.TickMs = 10
	}
	if cfg.Defaults.DebounceMs <= 0 {
		cfg.Defaults.DebounceMs = 50
	}
	if cfg.Defaults.DisplayRefreshTicks <= 0 {
		cfg.Defaults.DisplayRefreshTicks = 25
	}

	if cfg.Gamepad.Device == "" {
		cfg.Gamepad.Device = "/dev/input/js0"
	}

	return &cfg, nil
}

// TickPeriod returns the teleop loop period.
func (c *Config) TickPeriod() time.Duration {
	return time.Duration(c.Defaults.TickMs) * time.Millisecond
}

// DebounceDelay returns the button resample delay.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Defaults.DebounceMs) * time.Millisecond
}

// WheelCircumferenceM returns the wheel circumference in meters.
func (c *Config) WheelCircumferenceM() float64 {
	return c.Drivetrain.WheelDiameterMm / 1000.0 * math.Pi
}

// FullSpeedMps returns the robot ground speed at 100% power, derived
// from the free RPM and wheel circumference.
func (c *Config) FullSpeedMps() float64 {
	return c.Drivetrain.FreeRPM / 60.0 * c.WheelCircumferenceM()
}
