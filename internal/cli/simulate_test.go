package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pawswipe/internal/deck"
)

func TestSimulate_CommitDecidesTopCard(t *testing.T) {
	out, err := execute(t, "simulate", scenarioPath("slow_commit_right"),
		"--cards", "rex,luna", "--session", "s-1", "--format", "json")
	require.NoError(t, err, out)

	var result SimulateResult
	decodeData(t, out, &result)
	assert.Equal(t, "s-1", result.Session)
	require.Len(t, result.Decisions, 1)
	assert.Equal(t, "rex", result.Decisions[0].Card.ID)
	assert.Equal(t, deck.ActionLike, result.Decisions[0].Action)
	assert.Equal(t, 1, result.Remaining)
	assert.Len(t, result.Gestures, 1)
	assert.False(t, result.Recorded)

	require.Len(t, result.Steps, 5)
	assert.Equal(t, "intent", result.Steps[2].State)
	assert.Equal(t, "like", result.Steps[4].Action)
	assert.Equal(t, 2000.0, result.Steps[4].AtMs)
}

func TestSimulate_AbandonKeepsCard(t *testing.T) {
	out, err := execute(t, "simulate", scenarioPath("abandon_after_intent"), "--cards", "rex")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Decisions: 0 (remaining cards: 1)")
}

func TestSimulate_ExhaustedDeck(t *testing.T) {
	// An empty deck rejects the first pointer down.
	_, err := execute(t, "simulate", scenarioPath("intent_does_not_decay"), "--cards", "")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "deck is empty")
}

func TestSimulate_Metrics(t *testing.T) {
	out, err := execute(t, "simulate", scenarioPath("velocity_escape_left"), "--metrics")
	require.NoError(t, err, out)
	assert.Contains(t, out, `pawswipe_deck_decisions_total{action="pass"} 1`)
	assert.Contains(t, out, `pawswipe_gesture_total{outcome="committed"} 1`)
}

func TestSimulate_MissingScenario(t *testing.T) {
	_, err := execute(t, "simulate", scenarioPath("nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSimulate_RecordReplayTrace(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "simulate", scenarioPath("intent_does_not_decay"),
		"--db", db, "--session", "s-1", "--cards", "rex,luna", "--format", "json")
	require.NoError(t, err, out)
	var sim SimulateResult
	decodeData(t, out, &sim)
	assert.True(t, sim.Recorded)
	require.Len(t, sim.Gestures, 2, "abandon and commit are both recorded")

	// A second run in a new session appends to the same log.
	out, err = execute(t, "simulate", scenarioPath("velocity_escape_left"), "--db", db, "--session", "s-2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Recorded 1 gesture(s)")

	out, err = execute(t, "replay", "--db", db, "--format", "json")
	require.NoError(t, err, out)
	var replay ReplayResult
	decodeData(t, out, &replay)
	assert.True(t, replay.AllDeterministic)
	assert.Equal(t, 2, replay.TotalSessions)
	assert.Equal(t, 3, replay.TotalGestures)
	require.Len(t, replay.Sessions, 2)
	assert.Equal(t, "s-1", replay.Sessions[0].SessionID)
	assert.Equal(t, 1, replay.Sessions[0].Committed)
	assert.Equal(t, 1, replay.Sessions[0].Decisions)

	out, err = execute(t, "replay", "--db", db, "--session", "s-2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ s-2: 1 gesture(s), 1 committed, 1 decision(s)")

	out, err = execute(t, "trace", "--db", db, "--session", "s-1")
	require.NoError(t, err, out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "idle")
	assert.Contains(t, lines[1], "committed")

	out, err = execute(t, "trace", "--db", db, "--gesture", sim.Gestures[1])
	require.NoError(t, err, out)
	assert.Contains(t, out, "Gesture "+sim.Gestures[1])
	assert.Contains(t, out, "card=rex")
	assert.Contains(t, out, "Outcome: committed right distance=170 velocity=1700 duration=100ms")
}

func TestTrace_NotFound(t *testing.T) {
	db := tempDB(t)
	_, err := execute(t, "simulate", scenarioPath("velocity_escape_left"), "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "trace", "--db", db, "--gesture", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "gesture not found: missing")
}

func TestTrace_RequiresSelector(t *testing.T) {
	_, err := execute(t, "trace", "--db", tempDB(t))
	require.Error(t, err)
}

func TestReplay_RequiresDatabase(t *testing.T) {
	_, err := execute(t, "replay")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReplay_EmptyDatabase(t *testing.T) {
	out, err := execute(t, "replay", "--db", tempDB(t))
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found in database.")
}
