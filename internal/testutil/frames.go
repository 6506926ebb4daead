package testutil

import "github.com/roach88/pawswipe/internal/swipe"

// ManualFrames is a swipe.FrameScheduler whose frames run only on Flush.
//
// Not safe for concurrent use; it runs callbacks on the caller's goroutine,
// which is the contract swipe.FrameScheduler requires.
type ManualFrames struct {
	next    swipe.FrameHandle
	pending map[swipe.FrameHandle]func()
	order   []swipe.FrameHandle
}

// NewManualFrames creates a scheduler with no pending frames.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{pending: make(map[swipe.FrameHandle]func())}
}

// RequestFrame queues fn for the next Flush.
func (f *ManualFrames) RequestFrame(fn func()) swipe.FrameHandle {
	f.next++
	f.pending[f.next] = fn
	f.order = append(f.order, f.next)
	return f.next
}

// CancelFrame drops a queued callback. Unknown handles are ignored.
func (f *ManualFrames) CancelFrame(h swipe.FrameHandle) {
	delete(f.pending, h)
}

// Pending returns the number of queued callbacks.
func (f *ManualFrames) Pending() int {
	return len(f.pending)
}

// Flush runs one frame: every callback queued before the call.
// Callbacks requested during the flush run on the next Flush.
func (f *ManualFrames) Flush() int {
	batch := f.order
	f.order = nil
	ran := 0
	for _, h := range batch {
		fn, ok := f.pending[h]
		if !ok {
			continue
		}
		delete(f.pending, h)
		fn()
		ran++
	}
	return ran
}
