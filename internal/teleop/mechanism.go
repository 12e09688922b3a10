package teleop

import (
	"github.com/mbarbier/DriveGo/internal/debug"
	"github.com/mbarbier/DriveGo/internal/hw/motor"
)

// Pair is a paired mechanism (intake rollers, flex-wheel rollers) the
// loop drives forward, backward, or off.
type Pair interface {
	Set(power float64) error
}

// MotorPair drives two mirrored motors as one mechanism. Mirroring is
// handled by the motors' reversed wiring config, so both receive the
// same signed power.
type MotorPair struct {
	name  string
	left  *motor.Motor
	right *motor.Motor
}

func NewMotorPair(name string, left, right *motor.Motor) *MotorPair {
	return &MotorPair{name: name, left: left, right: right}
}

func (p *MotorPair) Set(power float64) error {
	debug.Mechanism(p.name, power)
	if err := p.left.SetPower(power); err != nil {
		return err
	}
	return p.right.SetPower(power)
}
