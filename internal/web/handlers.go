package web

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/cjeanneret/JoyGo/internal/logic/direction"
	"github.com/cjeanneret/JoyGo/internal/logic/zonemap"
)

// ClassifierConfig is the active calibration, exposed on GET /config so
// the page can draw zone boundaries without hardcoding them.
type ClassifierConfig struct {
	Thresholds     direction.Thresholds `json:"thresholds"`
	PollIntervalMs int                  `json:"poll_interval_ms"`
	DisplayMode    string               `json:"display_mode"`
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Broadcaster *PositionBroadcaster
	Config      ClassifierConfig

	zonesOnce sync.Once
	zonesJSON []byte
	staticFS  fs.FS
}

// NewHandlers creates handlers with the given dependencies.
func NewHandlers(broadcaster *PositionBroadcaster, cfg ClassifierConfig, staticFS fs.FS) *Handlers {
	return &Handlers{
		Broadcaster: broadcaster,
		Config:      cfg,
		staticFS:    staticFS,
	}
}

// HandleConfig returns the active calibration as JSON.
func (h *Handlers) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Config)
}

// HandleZones returns the full zone map for the active thresholds.
// Thresholds are fixed for the server's lifetime, so the plane sweep
// runs once.
func (h *Handlers) HandleZones(w http.ResponseWriter, r *http.Request) {
	h.zonesOnce.Do(func() {
		m := zonemap.Build(h.Config.Thresholds)
		h.zonesJSON, _ = json.Marshal(m)
	})
	w.Header().Set("Content-Type", "application/json")
	w.Write(h.zonesJSON)
}

// HandleState returns the most recent position, or 204 before the
// first poll cycle completes.
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	latest := h.Broadcaster.Latest()
	if latest == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(latest)
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

// HandlePositionStream handles GET /position/stream for SSE.
func (h *Handlers) HandlePositionStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx

	ch, unsub := h.Broadcaster.Subscribe()
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
