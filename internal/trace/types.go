package trace

import (
	"github.com/roach88/pawswipe/internal/swipe"
)

// Op is the engine operation a Sample records.
type Op string

const (
	OpStart  Op = "start"
	OpMove   Op = "move"
	OpEnd    Op = "end"
	OpCancel Op = "cancel"
)

// Sample is one recorded engine call. AtNanos is relative to the gesture start.
type Sample struct {
	Op      Op      `json:"op"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	AtNanos int64   `json:"at_ns"`
}

// Outcome is the engine's observable result after the final sample.
type Outcome struct {
	State         string  `json:"state"`
	Committed     bool    `json:"committed"`
	Direction     string  `json:"direction"`
	Distance      float64 `json:"distance"`
	Velocity      float64 `json:"velocity"`
	DurationNanos int64   `json:"duration_ns"`
}

// Recording is a complete gesture: the samples that drove the engine,
// the configuration it ran with and what it decided.
type Recording struct {
	SessionID string       `json:"session_id"`
	CardID    string       `json:"card_id"`
	Config    swipe.Config `json:"config"`
	Samples   []Sample     `json:"samples"`
	Outcome   Outcome      `json:"outcome"`
}

// Final returns the last sample, or false for an empty recording.
func (r Recording) Final() (Sample, bool) {
	if len(r.Samples) == 0 {
		return Sample{}, false
	}
	return r.Samples[len(r.Samples)-1], true
}

// outcomeOf reads the engine after the final operation.
func outcomeOf(e *swipe.Engine, res swipe.Result, committed bool, atNanos int64) Outcome {
	m := e.Metrics()
	out := Outcome{
		State:         e.State().String(),
		Committed:     committed,
		Direction:     swipe.DirectionNone.String(),
		Distance:      m.Distance,
		Velocity:      m.Velocity.Len(),
		DurationNanos: atNanos,
	}
	if committed {
		out.Direction = res.Direction.String()
		out.Velocity = res.Velocity
		out.DurationNanos = int64(res.Duration)
	}
	return out
}
