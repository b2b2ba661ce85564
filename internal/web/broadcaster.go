package web

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/cjeanneret/JoyGo/internal/logic/direction"
)

// PositionEvent is one poll cycle's result, serialized to SSE clients.
type PositionEvent struct {
	Time  string `json:"t"`
	X     uint8  `json:"x"`
	Y     uint8  `json:"y"`
	Dir   string `json:"dir"`             // long name ("north-east")
	Label string `json:"label"`           // short display code ("NE")
	Msg   string `json:"msg,omitempty"`   // log lines mirrored from debug output
	Level string `json:"level,omitempty"` // only set on log events
}

// PositionBroadcaster distributes position events to multiple SSE
// clients and keeps the most recent one for late joiners.
type PositionBroadcaster struct {
	mu      sync.RWMutex
	clients map[chan string]struct{}
	latest  *PositionEvent
}

// NewPositionBroadcaster creates a new broadcaster.
func NewPositionBroadcaster() *PositionBroadcaster {
	return &PositionBroadcaster{
		clients: make(map[chan string]struct{}),
	}
}

// Subscribe returns a channel that receives broadcast messages and a cleanup function.
// The caller must call the returned cleanup when done (e.g. on client disconnect).
func (b *PositionBroadcaster) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 64)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	unsub := func() {
		b.mu.Lock()
		delete(b.clients, ch)
		b.mu.Unlock()
		close(ch)
	}
	return ch, unsub
}

// PublishPosition implements the poller's Publisher contract: one event
// per completed poll cycle. Slow clients may miss events (non-blocking,
// buffered).
func (b *PositionBroadcaster) PublishPosition(x, y uint8, d direction.Direction) {
	evt := PositionEvent{
		Time:  time.Now().Format(time.RFC3339),
		X:     x,
		Y:     y,
		Dir:   d.String(),
		Label: d.Label(),
	}

	b.mu.Lock()
	b.latest = &evt
	b.mu.Unlock()

	b.send(evt)
}

// Latest returns the most recently published position, or nil before
// the first poll cycle completes.
func (b *PositionBroadcaster) Latest() *PositionEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.latest == nil {
		return nil
	}
	evt := *b.latest
	return &evt
}

// BroadcastLog mirrors a log line to SSE clients without touching the
// latest-position snapshot.
func (b *PositionBroadcaster) BroadcastLog(msg string) {
	b.send(PositionEvent{
		Time:  time.Now().Format(time.RFC3339),
		Msg:   msg,
		Level: "log",
	})
}

func (b *PositionBroadcaster) send(evt PositionEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	payload := string(data)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- payload:
		default:
			// channel full, skip
		}
	}
}

// BroadcastWriter implements io.Writer; each Write mirrors the content
// to SSE clients. Used with debug.SetOutput.
func BroadcastWriter(b *PositionBroadcaster) *broadcastWriter {
	return &broadcastWriter{b: b}
}

type broadcastWriter struct {
	b *PositionBroadcaster
}

func (w *broadcastWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg != "" {
		w.b.BroadcastLog(msg)
	}
	return len(p), nil
}
