package web

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Event kinds on the telemetry feed.
const (
	KindLog     = "log"
	KindError   = "error"
	KindMode    = "mode"
	KindBattery = "battery"
)

// Event is one item on the dashboard telemetry feed: a log line, a
// mode toggle, or a battery reading.
type Event struct {
	Time    string  `json:"t"`
	Kind    string  `json:"kind"`
	Msg     string  `json:"msg,omitempty"`
	Drive   string  `json:"drive,omitempty"`
	Steer   string  `json:"steer,omitempty"`
	Battery float64 `json:"battery"`
}

// Feed distributes telemetry events to the SSE clients of the
// dashboard. Slow clients miss events rather than stalling the robot.
type Feed struct {
	mu      sync.RWMutex
	clients map[chan string]struct{}
}

// NewFeed creates an empty telemetry feed.
func NewFeed() *Feed {
	return &Feed{
		clients: make(map[chan string]struct{}),
	}
}

// Subscribe returns a channel of JSON-encoded events and a cleanup
// function. The caller must call the cleanup when done (e.g. on
// client disconnect).
func (f *Feed) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 64)
	f.mu.Lock()
	f.clients[ch] = struct{}{}
	f.mu.Unlock()

	unsub := func() {
		f.mu.Lock()
		delete(f.clients, ch)
		f.mu.Unlock()
		close(ch)
	}
	return ch, unsub
}

// Publish stamps the event and fans it out to all subscribers,
// non-blocking: a full client channel drops the event.
func (f *Feed) Publish(evt Event) {
	evt.Time = time.Now().Format(time.RFC3339)
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	payload := string(data)

	f.mu.RLock()
	defer f.mu.RUnlock()
	for ch := range f.clients {
		select {
		case ch <- payload:
		default:
			// channel full, skip
		}
	}
}

// Log publishes a plain log line.
func (f *Feed) Log(msg string) {
	f.Publish(Event{Kind: KindLog, Msg: msg})
}

// LogError publishes an error line.
func (f *Feed) LogError(msg string) {
	f.Publish(Event{Kind: KindError, Msg: msg})
}

// Modes publishes a mode toggle.
func (f *Feed) Modes(drive, steer string) {
	f.Publish(Event{Kind: KindMode, Drive: drive, Steer: steer})
}

// BatteryLevel publishes a battery reading (negative = unavailable).
func (f *Feed) BatteryLevel(percent float64) {
	f.Publish(Event{Kind: KindBattery, Battery: percent})
}

// LogWriter wraps the feed as an io.Writer so the debug logger can be
// mirrored onto the dashboard; each Write becomes one log event.
func LogWriter(f *Feed) *logWriter {
	return &logWriter{f: f}
}

type logWriter struct {
	f *Feed
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg != "" {
		w.f.Log(msg)
	}
	return len(p), nil
}
