package gamepad

import "sync"

// Button names the digital inputs the control loop reads.
type Button int

const (
	Y Button = iota
	B
	A
	L1
	L2
	R1
	R2
)

func (b Button) String() string {
	switch b {
	case Y:
		return "Y"
	case B:
		return "B"
	case A:
		return "A"
	case L1:
		return "L1"
	case L2:
		return "L2"
	case R1:
		return "R1"
	case R2:
		return "R2"
	}
	return "?"
}

// Axis names the analog inputs the control loop reads.
type Axis int

const (
	LeftX Axis = iota
	LeftY
	RightY
)

// Gamepad is the abstract controller the teleop loop polls each tick.
// Analog readings are normalized to [-1, 1]; pushing a stick up is
// positive on the Y axes.
type Gamepad interface {
	Digital(b Button) bool
	Analog(a Axis) float64
}

// MockPad is a settable Gamepad for development and tests.
type MockPad struct {
	mu      sync.RWMutex
	buttons map[Button]bool
	axes    map[Axis]float64
}

// NewMockPad creates a MockPad with everything released and centered.
func NewMockPad() *MockPad {
	return &MockPad{
		buttons: make(map[Button]bool),
		axes:    make(map[Axis]float64),
	}
}

func (m *MockPad) Digital(b Button) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buttons[b]
}

func (m *MockPad) Analog(a Axis) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.axes[a]
}

// SetButton presses or releases a button.
func (m *MockPad) SetButton(b Button, pressed bool) {
	m.mu.Lock()
	m.buttons[b] = pressed
	m.mu.Unlock()
}

// SetAxis positions an analog axis.
func (m *MockPad) SetAxis(a Axis, value float64) {
	m.mu.Lock()
	m.axes[a] = value
	m.mu.Unlock()
}
