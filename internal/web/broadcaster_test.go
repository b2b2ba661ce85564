package web

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cjeanneret/JoyGo/internal/logic/direction"
)

func TestBroadcaster_SubscribeAndReceive(t *testing.T) {
	b := NewPositionBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	b.PublishPosition(255, 255, direction.NorthEast)

	select {
	case msg := <-ch:
		var evt PositionEvent
		if err := json.Unmarshal([]byte(msg), &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt.X != 255 || evt.Y != 255 {
			t.Errorf("position = (%d, %d), want (255, 255)", evt.X, evt.Y)
		}
		if evt.Label != "NE" {
			t.Errorf("label = %q, want \"NE\"", evt.Label)
		}
		if evt.Dir != "north-east" {
			t.Errorf("dir = %q, want \"north-east\"", evt.Dir)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for broadcast")
	}
}

func TestBroadcaster_MultipleSubscribers(t *testing.T) {
	b := NewPositionBroadcaster()
	ch1, unsub1 := b.Subscribe()
	defer unsub1()
	ch2, unsub2 := b.Subscribe()
	defer unsub2()

	b.PublishPosition(0, 0, direction.SouthWest)

	for i, ch := range []<-chan string{ch1, ch2} {
		select {
		case msg := <-ch:
			var evt PositionEvent
			if err := json.Unmarshal([]byte(msg), &evt); err != nil {
				t.Fatalf("subscriber %d: unmarshal: %v", i, err)
			}
			if evt.Label != "SW" {
				t.Errorf("subscriber %d: label = %q, want \"SW\"", i, evt.Label)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: timeout", i)
		}
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewPositionBroadcaster()
	ch, unsub := b.Subscribe()
	unsub()

	// Channel should be closed after unsubscribe
	_, ok := <-ch
	if ok {
		t.Error("expected channel to be closed after unsubscribe")
	}
}

func TestBroadcaster_FullChannelDropsEvent(t *testing.T) {
	b := NewPositionBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	// Fill the channel buffer (64 events)
	for i := 0; i < 64; i++ {
		b.PublishPosition(128, 128, direction.Center)
	}

	// This should not panic or block; the event is silently dropped
	b.PublishPosition(0, 0, direction.SouthWest)

	// Drain and count events
	count := 0
	for {
		select {
		case <-ch:
			count++
		default:
			goto done
		}
	}
done:
	if count != 64 {
		t.Errorf("expected 64 buffered events, got %d", count)
	}
}

func TestBroadcaster_AfterUnsubscribePublishDoesNotPanic(t *testing.T) {
	b := NewPositionBroadcaster()
	_, unsub := b.Subscribe()
	unsub()

	b.PublishPosition(128, 128, direction.Center)
}

func TestBroadcaster_LatestSnapshot(t *testing.T) {
	b := NewPositionBroadcaster()

	if b.Latest() != nil {
		t.Error("Latest before any publish should be nil")
	}

	b.PublishPosition(10, 20, direction.SouthWest)
	b.PublishPosition(250, 250, direction.NorthEast)

	latest := b.Latest()
	if latest == nil {
		t.Fatal("Latest after publish is nil")
	}
	if latest.X != 250 || latest.Y != 250 || latest.Label != "NE" {
		t.Errorf("latest = %+v, want (250, 250, NE)", latest)
	}
}

func TestBroadcaster_LogDoesNotClobberLatest(t *testing.T) {
	b := NewPositionBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	b.PublishPosition(10, 20, direction.SouthWest)
	b.BroadcastLog("poll loop started")

	if latest := b.Latest(); latest == nil || latest.X != 10 {
		t.Errorf("log event clobbered the latest position: %+v", latest)
	}

	<-ch // position event
	select {
	case msg := <-ch:
		var evt PositionEvent
		if err := json.Unmarshal([]byte(msg), &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt.Level != "log" || evt.Msg != "poll loop started" {
			t.Errorf("log event = %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for log event")
	}
}

func TestBroadcastWriter_TrimsAndForwards(t *testing.T) {
	b := NewPositionBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	w := BroadcastWriter(b)
	n, err := w.Write([]byte("[JoyGo] Direction: north-east\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 30 {
		t.Errorf("n = %d, want full input length 30", n)
	}

	select {
	case msg := <-ch:
		var evt PositionEvent
		if err := json.Unmarshal([]byte(msg), &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt.Msg != "[JoyGo] Direction: north-east" {
			t.Errorf("msg = %q, trailing newline should be trimmed", evt.Msg)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for forwarded log line")
	}
}

func TestBroadcastWriter_SkipsBlankLines(t *testing.T) {
	b := NewPositionBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	w := BroadcastWriter(b)
	if _, err := w.Write([]byte("\n\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	select {
	case msg := <-ch:
		t.Errorf("blank write forwarded: %q", msg)
	default:
	}
}
