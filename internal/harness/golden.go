package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/pawswipe/internal/trace"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string
	Result       *Result
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
// This is required because trace.MarshalCanonical only handles primitives, slices and maps.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	events := make([]any, len(s.Result.Trace))
	for i, ev := range s.Result.Trace {
		m := map[string]any{
			"step":      ev.Step,
			"op":        ev.Op,
			"at_ns":     ev.AtNanos,
			"state":     ev.State,
			"direction": ev.Direction,
			"haptics":   stringList(ev.Haptics),
		}
		switch ev.Op {
		case OpStart, OpMove:
			m["x"] = ev.X
			m["y"] = ev.Y
		case OpFrame:
			m["frames"] = ev.Frames
		case OpEnd:
			m["committed"] = ev.Committed
			if r := ev.Result; r != nil {
				m["result"] = map[string]any{
					"direction":   r.Direction.String(),
					"distance":    r.Distance,
					"velocity":    r.Velocity,
					"duration_ns": r.Duration.Nanoseconds(),
					"frames":      r.Frames,
				}
			}
		}
		events[i] = m
	}

	return map[string]any{
		"scenario": s.ScenarioName,
		"trace":    events,
		"states":   stringList(s.Result.States),
		"haptics":  stringList(s.Result.Haptics),
		"commits":  s.Result.Commits,
		"final":    s.Result.Final,
	}
}

func stringList(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// MarshalSnapshot renders the canonical trace, indented two spaces with a
// trailing newline. Key order and number formatting are canonical.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{ScenarioName: name, Result: result}
	raw, err := trace.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return nil, fmt.Errorf("canonical trace: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("indent trace: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}
