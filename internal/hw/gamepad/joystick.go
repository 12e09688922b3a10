package gamepad

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mbarbier/DriveGo/internal/debug"
)

// Linux joystick API event types (linux/joystick.h).
const (
	eventButton = 0x01
	eventAxis   = 0x02
	eventInit   = 0x80
)

// axisMax is the full-scale raw axis value of the joystick API.
const axisMax = 32767.0

// event is the 8-byte wire format of /dev/input/jsN.
type event struct {
	Time   uint32 // event timestamp in ms
	Value  int16
	Type   uint8
	Number uint8
}

// Mapping binds named buttons/axes to joystick numbers.
type Mapping struct {
	Buttons map[Button]uint8
	Axes    map[Axis]uint8
}

// Joystick reads the Linux joystick API from /dev/input/jsN and keeps
// the latest state behind a lock. The read loop runs in its own
// goroutine; the teleop loop polls Digital/Analog once per tick.
type Joystick struct {
	mapping Mapping

	mu      sync.RWMutex
	buttons map[uint8]bool
	axes    map[uint8]float64

	dev io.ReadCloser
}

// Open opens a joystick device and starts its read loop.
func Open(device string, mapping Mapping) (*Joystick, error) {
	f, err := os.Open(device)
	if err != nil {
		return nil, fmt.Errorf("open joystick %s: %w", device, err)
	}

	j := &Joystick{
		mapping: mapping,
		buttons: make(map[uint8]bool),
		axes:    make(map[uint8]float64),
		dev:     f,
	}
	go j.readLoop()

	debug.Info("Joystick opened: %s", device)
	return j, nil
}

func (j *Joystick) readLoop() {
	buf := make([]byte, 8)
	for {
		if _, err := io.ReadFull(j.dev, buf); err != nil {
			debug.Error(fmt.Errorf("joystick read: %w", err))
			return
		}
		j.apply(decodeEvent(buf))
	}
}

// decodeEvent parses one 8-byte joystick event (little-endian, per the
// kernel joystick API).
func decodeEvent(buf []byte) event {
	return event{
		Time:   binary.LittleEndian.Uint32(buf[0:4]),
		Value:  int16(binary.LittleEndian.Uint16(buf[4:6])),
		Type:   buf[6],
		Number: buf[7],
	}
}

func (j *Joystick) apply(e event) {
	switch e.Type &^ eventInit {
	case eventButton:
		j.mu.Lock()
		j.buttons[e.Number] = e.Value != 0
		j.mu.Unlock()
		debug.Trace("Joystick button %d = %d", e.Number, e.Value)

	case eventAxis:
		j.mu.Lock()
		j.axes[e.Number] = float64(e.Value) / axisMax
		j.mu.Unlock()
		debug.Trace("Joystick axis %d = %d", e.Number, e.Value)
	}
}

func (j *Joystick) Digital(b Button) bool {
	num, ok := j.mapping.Buttons[b]
	if !ok {
		return false
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.buttons[num]
}

func (j *Joystick) Analog(a Axis) float64 {
	num, ok := j.mapping.Axes[a]
	if !ok {
		return 0
	}
	j.mu.RLock()
	v := j.axes[num]
	j.mu.RUnlock()

	// The joystick API reports stick-up as negative; the control loop
	// expects up to be positive.
	if a == LeftY || a == RightY {
		v = -v
	}
	return v
}

// Close stops the read loop by closing the device.
func (j *Joystick) Close() error {
	return j.dev.Close()
}
