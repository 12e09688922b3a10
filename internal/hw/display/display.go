package display

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mbarbier/DriveGo/internal/debug"
)

// Display is the status surface the teleop loop writes to: the current
// mode labels and the battery level, refreshed on a fixed cadence.
type Display interface {
	ShowModes(drive, steer string)
	ShowBattery(percent float64)
}

// Console prints status through the debug logger and optionally
// forwards each line to a notifier (e.g. the web dashboard).
type Console struct {
	notify func(line string)
}

// NewConsole creates a console display. notify may be nil.
func NewConsole(notify func(line string)) *Console {
	return &Console{notify: notify}
}

func (c *Console) ShowModes(drive, steer string) {
	debug.Mode("drive", drive)
	debug.Mode("steer", steer)
	if c.notify != nil {
		c.notify(fmt.Sprintf("mode: drive=%s steer=%s", drive, steer))
	}
}

func (c *Console) ShowBattery(percent float64) {
	if percent < 0 {
		debug.Verbose("Battery level unavailable")
		return
	}
	debug.Battery(percent)
	if c.notify != nil {
		c.notify(fmt.Sprintf("battery: %.0f%%", percent))
	}
}

// Battery reads the charge level from a sysfs power_supply capacity
// file. Percent returns -1 when the path is unset or unreadable.
type Battery struct {
	path string
}

func NewBattery(path string) *Battery {
	return &Battery{path: path}
}

func (b *Battery) Percent() float64 {
	if b.path == "" {
		return -1
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		debug.Trace("battery read failed: %v", err)
		return -1
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		debug.Trace("battery parse failed: %v", err)
		return -1
	}
	return v
}
