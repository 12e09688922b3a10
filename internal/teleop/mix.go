package teleop

// Tuning holds the drive-feel constants used by the mixers. The values
// come from configuration, not code (the original program carried two
// inconsistent hardcoded sets).
type Tuning struct {
	SlowDivisor float64 // slow mode divides all input by this
	YawDivisor  float64 // fast mode softens yaw input by this
}

// ArcadeMix converts left-stick readings into a forward power and a
// yaw power. In fast mode the yaw axis is softened by YawDivisor; in
// slow mode both axes are divided by SlowDivisor.
func ArcadeMix(y, x float64, mode SpeedMode, t Tuning) (forward, yaw float64) {
	if mode == Fast {
		return y, x / t.YawDivisor
	}
	return y / t.SlowDivisor, x / t.SlowDivisor
}

// TankMix converts per-stick readings into left/right wheel powers.
// Slow mode divides both sides by SlowDivisor.
func TankMix(leftY, rightY float64, mode SpeedMode, t Tuning) (left, right float64) {
	if mode == Fast {
		return leftY, rightY
	}
	return leftY / t.SlowDivisor, rightY / t.SlowDivisor
}
