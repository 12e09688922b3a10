package teleop

// SpeedMode scales drivetrain input: full power or precision driving.
type SpeedMode int

const (
	Fast SpeedMode = iota
	Slow
)

// Toggle returns the only other speed mode.
func (m SpeedMode) Toggle() SpeedMode {
	if m == Fast {
		return Slow
	}
	return Fast
}

func (m SpeedMode) String() string {
	if m == Slow {
		return "SLOW"
	}
	return "FAST"
}

// SteerMode selects how controller axes mix into wheel commands.
type SteerMode int

const (
	Arcade SteerMode = iota
	Tank
)

// Toggle returns the only other steering scheme.
func (m SteerMode) Toggle() SteerMode {
	if m == Arcade {
		return Tank
	}
	return Arcade
}

func (m SteerMode) String() string {
	if m == Tank {
		return "TANK"
	}
	return "ARCADE"
}
