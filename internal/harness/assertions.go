package harness

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// floatTolerance bounds float comparisons in result assertions.
const floatTolerance = 1e-9

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s (%g, %g) -> %s %v\n", ev.Step, ev.Op, ev.X, ev.Y, ev.State, ev.Haptics)
		}
	}
	return buf.String()
}

func assertFinalState(result *Result, a Assertion) error {
	if result.Final == a.State {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalState,
		Expected: a.State,
		Actual:   result.Final,
		Trace:    result.Trace,
	}
}

// assertStateSequence requires an exact match of the distinct state sequence.
func assertStateSequence(result *Result, a Assertion) error {
	if slices.Equal(result.States, a.States) {
		return nil
	}
	return &AssertionError{
		Type:     AssertStateSequence,
		Expected: strings.Join(a.States, " -> "),
		Actual:   strings.Join(result.States, " -> "),
		Trace:    result.Trace,
	}
}

func assertHaptics(result *Result, a Assertion) error {
	want := a.Pulses
	if want == nil {
		want = []string{}
	}
	if slices.Equal(result.Haptics, want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertHaptics,
		Expected: fmt.Sprintf("%v", want),
		Actual:   fmt.Sprintf("%v", result.Haptics),
		Trace:    result.Trace,
	}
}

// assertResult checks the last end step against a subset of fields.
func assertResult(result *Result, a Assertion) error {
	ev, ok := result.LastEnd()
	if !ok {
		return &AssertionError{
			Type:     AssertResult,
			Expected: "an end step",
			Actual:   "no gesture ended",
			Trace:    result.Trace,
		}
	}

	want := a.Result
	var diffs []string
	if want.Committed != nil && *want.Committed != ev.Committed {
		diffs = append(diffs, fmt.Sprintf("committed: want %t, got %t", *want.Committed, ev.Committed))
	}

	if want.Direction != "" && want.Direction != ev.Direction {
		diffs = append(diffs, fmt.Sprintf("direction: want %s, got %s", want.Direction, ev.Direction))
	}

	r := ev.Result
	if r == nil {
		if want.Distance != nil || want.Velocity != nil || want.DurationMs != nil || want.Frames != nil {
			diffs = append(diffs, "gesture did not commit; result values unavailable")
		}
	} else {
		if want.Distance != nil && !closeTo(*want.Distance, r.Distance) {
			diffs = append(diffs, fmt.Sprintf("distance: want %g, got %g", *want.Distance, r.Distance))
		}
		if want.Velocity != nil && !closeTo(*want.Velocity, r.Velocity) {
			diffs = append(diffs, fmt.Sprintf("velocity: want %g, got %g", *want.Velocity, r.Velocity))
		}
		if want.DurationMs != nil {
			got := float64(r.Duration) / float64(time.Millisecond)
			if !closeTo(*want.DurationMs, got) {
				diffs = append(diffs, fmt.Sprintf("duration_ms: want %g, got %g", *want.DurationMs, got))
			}
		}
		if want.Frames != nil && *want.Frames != r.Frames {
			diffs = append(diffs, fmt.Sprintf("frames: want %d, got %d", *want.Frames, r.Frames))
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertResult,
		Expected: "result matching scenario",
		Actual:   strings.Join(diffs, "; "),
		Trace:    result.Trace,
	}
}

func assertCommitCount(result *Result, a Assertion) error {
	if result.Commits == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertCommitCount,
		Expected: fmt.Sprintf("%d commits", a.Count),
		Actual:   fmt.Sprintf("%d commits", result.Commits),
		Trace:    result.Trace,
	}
}

func closeTo(want, got float64) bool {
	return math.Abs(want-got) <= floatTolerance*math.Max(1, math.Abs(want))
}

// EvaluateAssertions runs all assertions against the result.
// Returns a list of error messages (empty if all pass).
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertFinalState:
			err = assertFinalState(result, assertion)
		case AssertStateSequence:
			err = assertStateSequence(result, assertion)
		case AssertHaptics:
			err = assertHaptics(result, assertion)
		case AssertResult:
			if assertion.Result == nil {
				err = fmt.Errorf("assertion[%d]: result assertion requires result fields", i)
			} else {
				err = assertResult(result, assertion)
			}
		case AssertCommitCount:
			err = assertCommitCount(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
