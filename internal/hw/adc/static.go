package adc

import "sync"

// Static is a Sampler with settable values, for mock mode and tests.
type Static struct {
	mu   sync.Mutex
	x, y uint8
}

// NewStatic creates a sampler that always reports (x, y) until Set is
// called.
func NewStatic(x, y uint8) *Static {
	return &Static{x: x, y: y}
}

// Set replaces the values returned by subsequent Sample calls.
func (s *Static) Set(x, y uint8) {
	s.mu.Lock()
	s.x, s.y = x, y
	s.mu.Unlock()
}

func (s *Static) Sample() (uint8, uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x, s.y, nil
}

func (s *Static) Close() error { return nil }
