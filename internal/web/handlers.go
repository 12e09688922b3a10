package web

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"sync"
	"time"
)

// Status is the robot telemetry snapshot served on GET /status.
// BatteryPct is negative when the level is unavailable.
type Status struct {
	DriveMode  string  `json:"drive_mode"`
	SteerMode  string  `json:"steer_mode"`
	BatteryPct float64 `json:"battery_pct"`
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Feed     *Feed
	staticFS fs.FS

	mu     sync.RWMutex
	status Status
}

// NewHandlers creates handlers with the given dependencies.
func NewHandlers(feed *Feed, staticFS fs.FS) *Handlers {
	return &Handlers{
		Feed:     feed,
		staticFS: staticFS,
		status:   Status{DriveMode: "FAST", SteerMode: "ARCADE", BatteryPct: -1},
	}
}

// SetModes records the current mode labels and publishes the toggle
// on the feed. Called from the display path each time a mode toggles.
func (h *Handlers) SetModes(drive, steer string) {
	h.mu.Lock()
	h.status.DriveMode = drive
	h.status.SteerMode = steer
	h.mu.Unlock()
	h.Feed.Modes(drive, steer)
}

// SetBattery records the latest battery reading and publishes it.
func (h *Handlers) SetBattery(percent float64) {
	h.mu.Lock()
	h.status.BatteryPct = percent
	h.mu.Unlock()
	h.Feed.BatteryLevel(percent)
}

// HandleStatus returns the telemetry snapshot as JSON.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	status := h.status
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// ServeIndex serves the main HTML page (root path only).
func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.staticFS, "index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// HandleStatusStream handles GET /status/stream for SSE.
func (h *Handlers) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx

	ch, unsub := h.Feed.Subscribe()
	defer unsub()

	// Send initial comment to establish connection
	w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	// Heartbeat while idle
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			w.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()

		case <-ticker.C:
			w.Write([]byte(": heartbeat\n\n"))
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
