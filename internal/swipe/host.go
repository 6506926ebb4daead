package swipe

import "time"

// Intensity is the strength of a haptic impact.
type Intensity int

const (
	IntensityLight Intensity = iota
	IntensityMedium
	IntensityHeavy
)

func (i Intensity) String() string {
	switch i {
	case IntensityLight:
		return "light"
	case IntensityMedium:
		return "medium"
	case IntensityHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// Haptics is the host's haptic feedback sink. Calls are fire-and-forget.
type Haptics interface {
	Impact(Intensity)
	Selection()
}

// NopHaptics discards all pulses.
type NopHaptics struct{}

func (NopHaptics) Impact(Intensity) {}
func (NopHaptics) Selection()       {}

// Clock supplies timestamps for velocity and duration computation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which carries a monotonic reading.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

// FrameScheduler is the host's per-frame callback primitive.
//
// Callbacks must run on the goroutine that drives the Engine.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}

// NopFrames never runs callbacks.
type NopFrames struct{}

func (NopFrames) RequestFrame(func()) FrameHandle { return 0 }
func (NopFrames) CancelFrame(FrameHandle)         {}
