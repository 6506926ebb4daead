package testutil

import (
	"sync"

	"github.com/roach88/pawswipe/internal/swipe"
)

// Pulse names recorded by RecordingHaptics.
const (
	PulseLight     = "light"
	PulseMedium    = "medium"
	PulseHeavy     = "heavy"
	PulseSelection = "selection"
)

// RecordingHaptics is a swipe.Haptics that remembers every pulse in order.
type RecordingHaptics struct {
	mu     sync.Mutex
	pulses []string
}

// NewRecordingHaptics creates an empty recorder.
func NewRecordingHaptics() *RecordingHaptics {
	return &RecordingHaptics{}
}

// Impact records an impact pulse by intensity name.
func (h *RecordingHaptics) Impact(i swipe.Intensity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pulses = append(h.pulses, i.String())
}

// Selection records a selection pulse.
func (h *RecordingHaptics) Selection() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pulses = append(h.pulses, PulseSelection)
}

// Pulses returns a copy of the recorded pulses. Never nil.
func (h *RecordingHaptics) Pulses() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.pulses))
	copy(out, h.pulses)
	return out
}

// Reset forgets all recorded pulses.
func (h *RecordingHaptics) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pulses = nil
}
