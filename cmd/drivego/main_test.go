package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbarbier/DriveGo/internal/config"
	"github.com/mbarbier/DriveGo/internal/hw/gamepad"
	"github.com/mbarbier/DriveGo/internal/web"
)

// ---------- webPortFlag ----------

func TestWebPortFlag_EmptyString(t *testing.T) {
	w := &webPortFlag{defaultPort: 8080}
	if err := w.Set(""); err != nil {
		t.Fatalf("Set(\"\"): %v", err)
	}
	if w.port() != 8080 {
		t.Errorf("port = %d, want default 8080", w.port())
	}
}

func TestWebPortFlag_ValidPorts(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"80", 80},
		{"8980", 8980},
		{"65535", 65535},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			w := &webPortFlag{defaultPort: 8080}
			if err := w.Set(tc.input); err != nil {
				t.Fatalf("Set(%q): %v", tc.input, err)
			}
			if w.port() != tc.want {
				t.Errorf("port = %d, want %d", w.port(), tc.want)
			}
		})
	}
}

func TestWebPortFlag_InvalidPorts(t *testing.T) {
	cases := []string{"0", "-1", "65536", "abc", "80.5"}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			w := &webPortFlag{defaultPort: 8080}
			if err := w.Set(input); err == nil {
				t.Errorf("Set(%q) should fail", input)
			}
		})
	}
}

func TestWebPortFlag_String(t *testing.T) {
	w := &webPortFlag{defaultPort: 8080}
	if w.String() != "0" {
		t.Errorf("unset String = %q, want \"0\"", w.String())
	}
	if err := w.Set("9000"); err != nil {
		t.Fatal(err)
	}
	if w.String() != "9000" {
		t.Errorf("String = %q, want \"9000\"", w.String())
	}
}

// ---------- mappingFromConfig ----------

func TestMappingFromConfig(t *testing.T) {
	gc := config.GamepadConfig{
		ButtonY: 3, ButtonB: 1, ButtonA: 0,
		ButtonL1: 4, ButtonL2: 6, ButtonR1: 5, ButtonR2: 7,
		AxisLeftX: 0, AxisLeftY: 1, AxisRightY: 4,
	}
	m := mappingFromConfig(gc)

	if m.Buttons[gamepad.Y] != 3 || m.Buttons[gamepad.R2] != 7 {
		t.Errorf("button mapping = %v", m.Buttons)
	}
	if m.Axes[gamepad.RightY] != 4 {
		t.Errorf("axis mapping = %v", m.Axes)
	}
	if len(m.Buttons) != 7 {
		t.Errorf("mapped %d buttons, want 7", len(m.Buttons))
	}
	if len(m.Axes) != 3 {
		t.Errorf("mapped %d axes, want 3", len(m.Axes))
	}
}

// ---------- statusDisplay ----------

func TestStatusDisplay_NoDashboard(t *testing.T) {
	d := newStatusDisplay(nil)
	// Must not panic without a dashboard.
	d.ShowModes("FAST", "ARCADE")
	d.ShowBattery(75)
}

func TestStatusDisplay_UpdatesDashboard(t *testing.T) {
	h := web.NewHandlers(web.NewFeed(), web.StaticFS())
	d := newStatusDisplay(h)

	d.ShowModes("SLOW", "TANK")
	d.ShowBattery(42)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	var s web.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.DriveMode != "SLOW" || s.SteerMode != "TANK" || s.BatteryPct != 42 {
		t.Errorf("dashboard status = %+v", s)
	}
}
