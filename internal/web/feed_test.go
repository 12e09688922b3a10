package web

import (
	"encoding/json"
	"testing"
	"time"
)

func receiveEvent(t *testing.T, ch <-chan string) Event {
	t.Helper()
	select {
	case payload := <-ch:
		var evt Event
		if err := json.Unmarshal([]byte(payload), &evt); err != nil {
			t.Fatalf("payload not JSON: %v", err)
		}
		return evt
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestFeed_SubscribeAndReceive(t *testing.T) {
	f := NewFeed()
	ch, unsub := f.Subscribe()
	defer unsub()

	f.Log("teleop started")

	evt := receiveEvent(t, ch)
	if evt.Kind != KindLog || evt.Msg != "teleop started" {
		t.Errorf("event = %+v", evt)
	}
	if evt.Time == "" {
		t.Error("event should carry a timestamp")
	}
}

func TestFeed_TypedEvents(t *testing.T) {
	f := NewFeed()
	ch, unsub := f.Subscribe()
	defer unsub()

	cases := []struct {
		name    string
		publish func()
		check   func(t *testing.T, evt Event)
	}{
		{
			"mode_toggle",
			func() { f.Modes("SLOW", "TANK") },
			func(t *testing.T, evt Event) {
				if evt.Kind != KindMode || evt.Drive != "SLOW" || evt.Steer != "TANK" {
					t.Errorf("event = %+v", evt)
				}
			},
		},
		{
			"battery_reading",
			func() { f.BatteryLevel(73) },
			func(t *testing.T, evt Event) {
				if evt.Kind != KindBattery || evt.Battery != 73 {
					t.Errorf("event = %+v", evt)
				}
			},
		},
		{
			"error_line",
			func() { f.LogError("motor fault") },
			func(t *testing.T, evt Event) {
				if evt.Kind != KindError || evt.Msg != "motor fault" {
					t.Errorf("event = %+v", evt)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.publish()
			tc.check(t, receiveEvent(t, ch))
		})
	}
}

func TestFeed_MultipleSubscribers(t *testing.T) {
	f := NewFeed()
	ch1, unsub1 := f.Subscribe()
	defer unsub1()
	ch2, unsub2 := f.Subscribe()
	defer unsub2()

	f.Log("fan out")

	for i, ch := range []<-chan string{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d received nothing", i+1)
		}
	}
}

func TestFeed_UnsubscribeClosesChannel(t *testing.T) {
	f := NewFeed()
	ch, unsub := f.Subscribe()
	unsub()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}

func TestFeed_FullChannelDropsEvent(t *testing.T) {
	f := NewFeed()
	_, unsub := f.Subscribe()
	defer unsub()

	// Overfill the 64-slot buffer without reading; must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			f.Log("flood")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full client channel")
	}
}

func TestFeed_AfterUnsubscribePublishDoesNotPanic(t *testing.T) {
	f := NewFeed()
	_, unsub := f.Subscribe()
	unsub()

	f.Log("nobody home")
}

func TestLogWriter_Write(t *testing.T) {
	f := NewFeed()
	ch, unsub := f.Subscribe()
	defer unsub()

	w := LogWriter(f)
	n, err := w.Write([]byte("teleop started\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len("teleop started\n") {
		t.Errorf("n = %d, want full length", n)
	}

	evt := receiveEvent(t, ch)
	if evt.Kind != KindLog || evt.Msg != "teleop started" {
		t.Errorf("event = %+v, want trimmed log line", evt)
	}
}

func TestLogWriter_EmptyWriteIgnored(t *testing.T) {
	f := NewFeed()
	ch, unsub := f.Subscribe()
	defer unsub()

	w := LogWriter(f)
	if _, err := w.Write([]byte("  \n")); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-ch:
		t.Errorf("whitespace-only write published %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}
