package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/pawswipe/internal/swipe"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config overrides the default tuning (shallow merge).
	Config *swipe.Overrides `yaml:"config,omitempty"`

	// Steps is the scripted pointer stream.
	Steps []Step `yaml:"steps"`

	// Assertions validate the whole run.
	Assertions []Assertion `yaml:"assertions"`
}

// Step ops.
const (
	OpStart  = "start"
	OpMove   = "move"
	OpEnd    = "end"
	OpCancel = "cancel"
	OpFrame  = "frame"
)

// Step is one scripted engine call.
type Step struct {
	Op string  `yaml:"op"`
	X  float64 `yaml:"x,omitempty"`
	Y  float64 `yaml:"y,omitempty"`

	// AfterMs advances the clock before the op runs.
	AfterMs float64 `yaml:"after_ms,omitempty"`

	// Frames is the number of frames to flush (op frame only, default 1).
	Frames int `yaml:"frames,omitempty"`

	// Expect validates the engine right after this step.
	Expect *StepExpect `yaml:"expect,omitempty"`
}

// StepExpect specifies expected engine behavior after one step.
// Empty fields are not checked.
type StepExpect struct {
	State     string `yaml:"state,omitempty"`
	Committed *bool  `yaml:"committed,omitempty"` // end steps only
	Direction string `yaml:"direction,omitempty"`
	// Haptics are the pulses emitted by this step alone.
	Haptics []string `yaml:"haptics,omitempty"`
}

// Assertion validates the whole run.
type Assertion struct {
	// Type is one of final_state, state_sequence, haptics, result, commit_count.
	Type string `yaml:"type"`

	// State is the expected final state (final_state).
	State string `yaml:"state,omitempty"`

	// States is the expected state sequence (state_sequence).
	States []string `yaml:"states,omitempty"`

	// Pulses is the expected pulse list (haptics). An empty list asserts silence.
	Pulses []string `yaml:"pulses,omitempty"`

	// Result is the expected outcome of the last end step (result).
	Result *ResultExpect `yaml:"result,omitempty"`

	// Count is the expected number of commits (commit_count).
	Count int `yaml:"count,omitempty"`
}

// ResultExpect is a subset match on the last end step. Nil fields are not checked.
type ResultExpect struct {
	Committed  *bool    `yaml:"committed,omitempty"`
	Direction  string   `yaml:"direction,omitempty"`
	Distance   *float64 `yaml:"distance,omitempty"`
	Velocity   *float64 `yaml:"velocity,omitempty"`
	DurationMs *float64 `yaml:"duration_ms,omitempty"`
	Frames     *int     `yaml:"frames,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalState    = "final_state"
	AssertStateSequence = "state_sequence"
	AssertHaptics       = "haptics"
	AssertResult        = "result"
	AssertCommitCount   = "commit_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir, sorted by path.
func FindScenarios(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scenarios directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	files := []string{}
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ext := filepath.Ext(path); !d.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan scenarios: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		switch step.Op {
		case OpStart, OpMove, OpEnd, OpCancel:
			if step.Frames != 0 {
				return fmt.Errorf("steps[%d]: frames is only valid for op %q", i, OpFrame)
			}
		case OpFrame:
			if step.Frames < 0 {
				return fmt.Errorf("steps[%d]: frames must be non-negative", i)
			}
		case "":
			return fmt.Errorf("steps[%d]: op is required", i)
		default:
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.AfterMs < 0 {
			return fmt.Errorf("steps[%d]: after_ms must be non-negative", i)
		}
		if err := validateExpect(i, step); err != nil {
			return err
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateExpect(index int, step Step) error {
	e := step.Expect
	if e == nil {
		return nil
	}
	if e.State != "" {
		if _, ok := swipe.ParseState(e.State); !ok {
			return fmt.Errorf("steps[%d].expect: unknown state %q", index, e.State)
		}
	}
	if e.Direction != "" {
		if _, ok := swipe.ParseDirection(e.Direction); !ok {
			return fmt.Errorf("steps[%d].expect: unknown direction %q", index, e.Direction)
		}
	}
	if e.Committed != nil && step.Op != OpEnd {
		return fmt.Errorf("steps[%d].expect: committed is only valid on %q steps", index, OpEnd)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertFinalState:
		if _, ok := swipe.ParseState(a.State); !ok {
			return fmt.Errorf("assertions[%d]: valid state is required for final_state", index)
		}
	case AssertStateSequence:
		if len(a.States) == 0 {
			return fmt.Errorf("assertions[%d]: states list is required for state_sequence", index)
		}
		for _, s := range a.States {
			if _, ok := swipe.ParseState(s); !ok {
				return fmt.Errorf("assertions[%d]: unknown state %q", index, s)
			}
		}
	case AssertHaptics:
		// An empty list asserts that no pulse fired.
	case AssertResult:
		if a.Result == nil {
			return fmt.Errorf("assertions[%d]: result is required for result", index)
		}
	case AssertCommitCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for commit_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
