package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/slow_commit_right.yaml")
	require.NoError(t, err)

	assert.Equal(t, "slow_commit_right", s.Name)
	require.Len(t, s.Steps, 5)
	assert.Equal(t, OpFrame, s.Steps[1].Op)
	assert.Equal(t, 2, s.Steps[1].Frames)
	assert.Equal(t, 1000.0, s.Steps[2].AfterMs)
	require.NotNil(t, s.Steps[4].Expect.Committed)
	assert.True(t, *s.Steps[4].Expect.Committed)
	assert.Nil(t, s.Config)
}

func TestLoadScenario_ConfigOverrides(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/intent_does_not_decay.yaml")
	require.NoError(t, err)
	require.NotNil(t, s.Config)
	require.NotNil(t, s.Config.VelocityEscape)
	assert.Equal(t, 10000.0, *s.Config.VelocityEscape)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	assert.Error(t, err)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "name: a\ndescription: b\nsteps: [{op: start}]\nassertion: []\n", "field assertion not found"},
		{"missing name", "description: b\nsteps: [{op: start}]\n", "name is required"},
		{"missing description", "name: a\nsteps: [{op: start}]\n", "description is required"},
		{"no steps", "name: a\ndescription: b\n", "steps list is required"},
		{"unknown op", "name: a\ndescription: b\nsteps: [{op: jump}]\n", `unknown op "jump"`},
		{"frames on move", "name: a\ndescription: b\nsteps: [{op: move, frames: 2}]\n", "frames is only valid"},
		{"negative after", "name: a\ndescription: b\nsteps: [{op: move, after_ms: -1}]\n", "after_ms must be non-negative"},
		{"bad expect state", "name: a\ndescription: b\nsteps: [{op: move, expect: {state: flying}}]\n", `unknown state "flying"`},
		{"committed on move", "name: a\ndescription: b\nsteps: [{op: move, expect: {committed: true}}]\n", "committed is only valid"},
		{"bad direction", "name: a\ndescription: b\nsteps: [{op: end, expect: {direction: up}}]\n", `unknown direction "up"`},
		{"unknown assertion", "name: a\ndescription: b\nsteps: [{op: start}]\nassertions: [{type: trace_order}]\n", "unknown assertion type"},
		{"empty sequence", "name: a\ndescription: b\nsteps: [{op: start}]\nassertions: [{type: state_sequence}]\n", "states list is required"},
		{"result without fields", "name: a\ndescription: b\nsteps: [{op: start}]\nassertions: [{type: result}]\n", "result is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFindScenarios(t *testing.T) {
	files, err := FindScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, files, 5)
	assert.Equal(t, filepath.Join("testdata", "scenarios", "abandon_after_intent.yaml"), files[0])

	_, err = FindScenarios("testdata/scenarios/slow_commit_right.yaml")
	assert.Error(t, err, "a file is not a scenarios directory")
}

func TestFindScenarios_Empty(t *testing.T) {
	files, err := FindScenarios(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestLoadScenario_TempFile(t *testing.T) {
	path := writeScenario(t, `
name: tmp
description: "minimal"
steps:
  - op: start
  - op: end
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 2)
	assert.Empty(t, s.Assertions)
}
