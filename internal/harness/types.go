package harness

import "github.com/roach88/pawswipe/internal/swipe"

// TraceEvent records one executed step and what the engine did in response.
type TraceEvent struct {
	Step    int     `json:"step"`
	Op      string  `json:"op"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	AtNanos int64   `json:"at_ns"` // clock reading relative to scenario start
	State   string  `json:"state"` // engine state after the step
	// Direction is the live direction, or the committed one on end steps.
	Direction string   `json:"direction"`
	Haptics   []string `json:"haptics"`

	// Frames is the number of frame callbacks run (frame steps only).
	Frames int `json:"frames,omitempty"`

	// Ended is set on end steps; Committed and Result describe the outcome.
	Ended     bool          `json:"ended,omitempty"`
	Committed bool          `json:"committed,omitempty"`
	Result    *swipe.Result `json:"result,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses and assertions match.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// States is the sequence of distinct consecutive states, starting at idle.
	States []string `json:"states"`

	// Haptics is every pulse emitted, in order.
	Haptics []string `json:"haptics"`

	// Commits counts committed gestures.
	Commits int `json:"commits"`

	// Final is the engine state after the last step.
	Final string `json:"final"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		States:  []string{swipe.StateIdle.String()},
		Haptics: []string{},
		Final:   swipe.StateIdle.String(),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// LastEnd returns the most recent end event, if any.
func (r *Result) LastEnd() (TraceEvent, bool) {
	for i := len(r.Trace) - 1; i >= 0; i-- {
		if r.Trace[i].Ended {
			return r.Trace[i], true
		}
	}
	return TraceEvent{}, false
}

// observe appends the event and folds its state into the sequence.
func (r *Result) observe(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
	r.Haptics = append(r.Haptics, ev.Haptics...)
	if r.States[len(r.States)-1] != ev.State {
		r.States = append(r.States, ev.State)
	}
	r.Final = ev.State
	if ev.Committed {
		r.Commits++
	}
}
