package auton

import (
	"context"

	"github.com/mbarbier/DriveGo/internal/config"
	"github.com/mbarbier/DriveGo/internal/debug"
	"github.com/mbarbier/DriveGo/internal/hw/motor"
)

// Drivetrain is the chassis surface the routine drives.
type Drivetrain interface {
	SetBrakeMode(b motor.BrakeMode)
	SetMaxVelocity(pct float64)
	MoveDistance(ctx context.Context, meters float64) error
	Stop() error
}

// Routine is the scripted autonomous period: hold brake mode, cap the
// velocity, drive forward a fixed distance. It carries no state; a
// re-enabled robot runs it from the top.
type Routine struct {
	drive Drivetrain
	cfg   config.AutonConfig
}

func New(drive Drivetrain, cfg config.AutonConfig) *Routine {
	return &Routine{drive: drive, cfg: cfg}
}

// Run executes the routine. It blocks until the script finishes or
// ctx is cancelled; the chassis is stopped either way.
func (r *Routine) Run(ctx context.Context) error {
	debug.Section("Autonomous")
	debug.Value("Max velocity", r.cfg.MaxVelocityPct)
	debug.Value("Move distance", r.cfg.MoveDistanceM)

	r.drive.SetBrakeMode(motor.Hold)
	r.drive.SetMaxVelocity(r.cfg.MaxVelocityPct)
	// Restore full output for whatever period follows
	defer r.drive.SetMaxVelocity(100)

	if err := r.drive.MoveDistance(ctx, r.cfg.MoveDistanceM); err != nil {
		_ = r.drive.Stop()
		return err
	}
	return nil
}
