package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer() *Server {
	h := NewHandlers(NewFeed(), StaticFS())
	return NewServer(":0", h)
}

func TestHandleStatus_Defaults(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var s Status
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if s.DriveMode != "FAST" || s.SteerMode != "ARCADE" {
		t.Errorf("default modes = %s/%s, want FAST/ARCADE", s.DriveMode, s.SteerMode)
	}
	if s.BatteryPct >= 0 {
		t.Errorf("battery = %v, want negative (unknown) before first report", s.BatteryPct)
	}
}

func TestHandleStatus_ReflectsUpdates(t *testing.T) {
	h := NewHandlers(NewFeed(), StaticFS())
	srv := NewServer(":0", h)

	h.SetModes("SLOW", "TANK")
	h.SetBattery(64)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	var s Status
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.DriveMode != "SLOW" || s.SteerMode != "TANK" || s.BatteryPct != 64 {
		t.Errorf("status = %+v", s)
	}
}

func TestServeIndex(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "DriveGo") {
		t.Error("index page should mention DriveGo")
	}
}

func TestServeIndex_OnlyRoot(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/not-a-page", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Error("non-root path should not serve the index")
	}
}

func TestHandlers_UpdatesPublishEvents(t *testing.T) {
	f := NewFeed()
	h := NewHandlers(f, StaticFS())
	ch, unsub := f.Subscribe()
	defer unsub()

	h.SetModes("SLOW", "TANK")
	evt := receiveEvent(t, ch)
	if evt.Kind != KindMode || evt.Drive != "SLOW" || evt.Steer != "TANK" {
		t.Errorf("mode event = %+v", evt)
	}

	h.SetBattery(88)
	evt = receiveEvent(t, ch)
	if evt.Kind != KindBattery || evt.Battery != 88 {
		t.Errorf("battery event = %+v", evt)
	}
}

func TestHandleStatus_MethodNotAllowed(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /status = %d, want 405", rec.Code)
	}
}
