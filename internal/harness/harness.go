package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/roach88/pawswipe/internal/swipe"
	"github.com/roach88/pawswipe/internal/testutil"
	"github.com/roach88/pawswipe/internal/trace"
)

// sessionID tags harness recordings.
const sessionID = "harness"

// Harness is the test execution engine.
// It runs scenarios against a real engine with a manual clock, a recording
// haptic sink and a manual frame scheduler.
type Harness struct {
	recorder *trace.Recorder
	clock    *testutil.ManualClock
	haptics  *testutil.RecordingHaptics
	frames   *testutil.ManualFrames
	logger   *slog.Logger
	name     string
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs on a fresh engine so results never depend on run order.
//
// Execution flow:
// 1. Build the engine from the scenario config
// 2. Execute steps, checking per-step expectations
// 3. Replay every finished gesture and compare outcomes
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, errors.New("scenario is nil")
	}

	cfg := swipe.DefaultConfig()
	if scenario.Config != nil {
		cfg = swipe.NewConfig(*scenario.Config)
	}

	h := &Harness{
		clock:   testutil.NewManualClock(),
		haptics: testutil.NewRecordingHaptics(),
		frames:  testutil.NewManualFrames(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
		name:    scenario.Name,
	}
	h.recorder = trace.NewRecorder(cfg, h.clock,
		swipe.WithHaptics(h.haptics),
		swipe.WithFrames(h.frames),
		swipe.WithLogger(h.logger),
	)

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(i, step, result); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}
	return result, nil
}

// executeStep runs one step, records its event and checks its expectations.
func (h *Harness) executeStep(index int, step Step, result *Result) error {
	if step.AfterMs > 0 {
		h.clock.Advance(time.Duration(math.Round(step.AfterMs * float64(time.Millisecond))))
	}

	before := len(h.haptics.Pulses())
	samples := h.recorder.Len()

	ev := TraceEvent{Step: index, Op: step.Op}
	switch step.Op {
	case OpStart:
		h.recorder.Start(step.X, step.Y)
		ev.X, ev.Y = step.X, step.Y
	case OpMove:
		h.recorder.Move(step.X, step.Y)
		ev.X, ev.Y = step.X, step.Y
	case OpEnd:
		res, ok := h.recorder.End()
		ev.Ended = h.recorder.Len() > samples
		ev.Committed = ok
		if ok {
			ev.Result = &res
		}
	case OpCancel:
		h.recorder.Cancel()
	case OpFrame:
		n := step.Frames
		if n == 0 {
			n = 1
		}
		for range n {
			ev.Frames += h.frames.Flush()
		}
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}

	ev.AtNanos = h.clock.Elapsed().Nanoseconds()
	ev.State = h.recorder.Engine().State().String()
	ev.Direction = h.direction(ev)
	ev.Haptics = slices.Clone(h.haptics.Pulses()[before:])
	if ev.Haptics == nil {
		ev.Haptics = []string{}
	}
	result.observe(ev)

	if finished := (step.Op == OpEnd || step.Op == OpCancel) && h.recorder.Len() > samples; finished {
		h.verifyReplay(index, result)
	}
	if step.Expect != nil {
		for _, msg := range checkExpect(index, step, ev) {
			result.AddError(msg)
		}
	}
	return nil
}

// direction is the committed direction on end steps and the live
// direction otherwise; none below the engage band.
func (h *Harness) direction(ev TraceEvent) string {
	if ev.Op == OpEnd {
		if ev.Result != nil {
			return ev.Result.Direction.String()
		}
		return swipe.DirectionNone.String()
	}
	d, _ := h.recorder.Engine().Direction()
	return d.String()
}

// verifyReplay replays the gesture that just finished on a fresh engine.
func (h *Harness) verifyReplay(index int, result *Result) {
	rec := h.recorder.Recording(sessionID, h.name)
	if _, err := trace.Verify(rec); err != nil {
		result.AddError(fmt.Sprintf("step %d: replay diverged: %v", index, err))
	}
}

// checkExpect compares one step's event with its expect clause.
func checkExpect(index int, step Step, ev TraceEvent) []string {
	e := step.Expect
	var errs []string

	if e.State != "" && e.State != ev.State {
		errs = append(errs, fmt.Sprintf("step %d: expected state %s, got %s", index, e.State, ev.State))
	}
	if e.Committed != nil && *e.Committed != ev.Committed {
		errs = append(errs, fmt.Sprintf("step %d: expected committed=%t, got %t", index, *e.Committed, ev.Committed))
	}
	if e.Direction != "" && e.Direction != ev.Direction {
		errs = append(errs, fmt.Sprintf("step %d: expected direction %s, got %s", index, e.Direction, ev.Direction))
	}
	if e.Haptics != nil && !slices.Equal(e.Haptics, ev.Haptics) {
		errs = append(errs, fmt.Sprintf("step %d: expected haptics %v, got %v", index, e.Haptics, ev.Haptics))
	}
	return errs
}
