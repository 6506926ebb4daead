package trace

import (
	"time"

	"github.com/roach88/pawswipe/internal/swipe"
)

// Recorder drives a swipe.Engine and records every call it forwards.
//
// The Recorder is also the engine's clock. The engine reads its clock once per
// Start, Move and End, so the reading captured there is exactly the instant
// the engine used. Not safe for concurrent use.
type Recorder struct {
	base   swipe.Clock
	engine *swipe.Engine

	last    time.Time
	start   time.Time
	samples []Sample

	result    swipe.Result
	committed bool
}

// NewRecorder creates a Recorder and the engine it drives. Any WithClock in
// opts is superseded; base is consulted instead.
func NewRecorder(cfg swipe.Config, base swipe.Clock, opts ...swipe.Option) *Recorder {
	if base == nil {
		base = swipe.SystemClock{}
	}
	r := &Recorder{base: base, samples: []Sample{}}
	all := make([]swipe.Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, swipe.WithClock(r))
	r.engine = swipe.New(cfg, all...)
	return r
}

// Now implements swipe.Clock.
func (r *Recorder) Now() time.Time {
	r.last = r.base.Now()
	return r.last
}

// Engine returns the recorded engine. Calls made on it directly are not recorded.
func (r *Recorder) Engine() *swipe.Engine {
	return r.engine
}

// Start begins a new gesture and a new recording.
func (r *Recorder) Start(x, y float64) {
	r.engine.Start(x, y)
	r.start = r.last
	r.samples = []Sample{{Op: OpStart, X: x, Y: y}}
	r.result, r.committed = swipe.Result{}, false
}

// Move forwards a pointer position. Moves outside a gesture are not recorded.
func (r *Recorder) Move(x, y float64) {
	if !r.engine.Active() {
		return
	}
	r.engine.Move(x, y)
	r.samples = append(r.samples, Sample{Op: OpMove, X: x, Y: y, AtNanos: r.offset()})
}

// End finalizes the gesture.
func (r *Recorder) End() (swipe.Result, bool) {
	if !r.engine.Active() {
		return swipe.Result{}, false
	}
	res, ok := r.engine.End()
	r.samples = append(r.samples, Sample{Op: OpEnd, AtNanos: r.offset()})
	r.result, r.committed = res, ok
	return res, ok
}

// Cancel aborts the gesture. The engine does not read its clock on cancel,
// so the sample is stamped from the base clock.
func (r *Recorder) Cancel() {
	if !r.engine.Active() {
		return
	}
	r.engine.Cancel()
	r.samples = append(r.samples, Sample{Op: OpCancel, AtNanos: r.base.Now().Sub(r.start).Nanoseconds()})
}

// Len returns the number of samples in the current recording.
func (r *Recorder) Len() int {
	return len(r.samples)
}

// Recording snapshots the current gesture. The returned samples are not
// shared with the Recorder.
func (r *Recorder) Recording(sessionID, cardID string) Recording {
	samples := make([]Sample, len(r.samples))
	copy(samples, r.samples)

	var at int64
	if n := len(samples); n > 0 {
		at = samples[n-1].AtNanos
	}
	return Recording{
		SessionID: sessionID,
		CardID:    cardID,
		Config:    r.engine.Config(),
		Samples:   samples,
		Outcome:   outcomeOf(r.engine, r.result, r.committed, at),
	}
}

func (r *Recorder) offset() int64 {
	return r.last.Sub(r.start).Nanoseconds()
}
