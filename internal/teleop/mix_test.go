package teleop

import (
	"math"
	"testing"
)

var testTuning = Tuning{SlowDivisor: 4, YawDivisor: 1.5}

func TestSpeedMode_ToggleTwiceReturns(t *testing.T) {
	for _, start := range []SpeedMode{Fast, Slow} {
		if got := start.Toggle().Toggle(); got != start {
			t.Errorf("%v.Toggle().Toggle() = %v, want %v", start, got, start)
		}
	}
}

func TestSteerMode_ToggleTwiceReturns(t *testing.T) {
	for _, start := range []SteerMode{Arcade, Tank} {
		if got := start.Toggle().Toggle(); got != start {
			t.Errorf("%v.Toggle().Toggle() = %v, want %v", start, got, start)
		}
	}
}

func TestMode_Toggle(t *testing.T) {
	if Fast.Toggle() != Slow || Slow.Toggle() != Fast {
		t.Error("speed mode must toggle to its only alternative")
	}
	if Arcade.Toggle() != Tank || Tank.Toggle() != Arcade {
		t.Error("steer mode must toggle to its only alternative")
	}
}

func TestArcadeMix_Fast(t *testing.T) {
	forward, yaw := ArcadeMix(0.9, 0.6, Fast, testTuning)
	if forward != 0.9 {
		t.Errorf("forward = %v, want 0.9", forward)
	}
	if yaw != 0.6/1.5 {
		t.Errorf("yaw = %v, want %v", yaw, 0.6/1.5)
	}
}

func TestArcadeMix_Slow(t *testing.T) {
	forward, yaw := ArcadeMix(0.9, 0.6, Slow, testTuning)
	if forward != 0.9/4 {
		t.Errorf("forward = %v, want %v", forward, 0.9/4)
	}
	if yaw != 0.6/4 {
		t.Errorf("yaw = %v, want %v", yaw, 0.6/4)
	}
}

func TestArcadeMix_SlowIsQuarterOfFastForward(t *testing.T) {
	inputs := []float64{-1, -0.5, -0.15, 0, 0.15, 0.5, 1}
	for _, y := range inputs {
		fastF, _ := ArcadeMix(y, 0, Fast, testTuning)
		slowF, _ := ArcadeMix(y, 0, Slow, testTuning)
		if slowF != fastF/4 {
			t.Errorf("y=%v: slow forward %v != fast forward %v / 4", y, slowF, fastF)
		}
	}
}

func TestTankMix_Fast(t *testing.T) {
	left, right := TankMix(0.7, -0.4, Fast, testTuning)
	if left != 0.7 || right != -0.4 {
		t.Errorf("TankMix = %v/%v, want 0.7/-0.4", left, right)
	}
}

func TestTankMix_SlowIsQuarterOfFast(t *testing.T) {
	inputs := []float64{-1, -0.3, 0, 0.3, 1}
	for _, ly := range inputs {
		for _, ry := range inputs {
			fl, fr := TankMix(ly, ry, Fast, testTuning)
			sl, sr := TankMix(ly, ry, Slow, testTuning)
			if sl != fl/4 || sr != fr/4 {
				t.Errorf("TankMix(%v, %v): slow %v/%v, want fast/4 %v/%v", ly, ry, sl, sr, fl/4, fr/4)
			}
		}
	}
}

func TestMix_OutputsStayInRange(t *testing.T) {
	inputs := []float64{-1, -0.99, -0.5, 0, 0.5, 0.99, 1}
	for _, mode := range []SpeedMode{Fast, Slow} {
		for _, a := range inputs {
			for _, b := range inputs {
				f, yw := ArcadeMix(a, b, mode, testTuning)
				if math.Abs(f) > 1 || math.Abs(yw) > 1 {
					t.Errorf("ArcadeMix(%v, %v, %v) = %v/%v out of range", a, b, mode, f, yw)
				}
				l, r := TankMix(a, b, mode, testTuning)
				if math.Abs(l) > 1 || math.Abs(r) > 1 {
					t.Errorf("TankMix(%v, %v, %v) = %v/%v out of range", a, b, mode, l, r)
				}
			}
		}
	}
}
