package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaySession_AllMatch(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i, dx := range []float64{200, -40, 12.5} {
		_, err := s.WriteGesture(ctx, createTestGesture(t, "s1", "c1", dx, int64(i+1)))
		require.NoError(t, err)
	}

	reports, err := s.ReplaySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, reports, 3)
	for _, r := range reports {
		assert.True(t, r.OK(), "%+v", r)
		assert.Equal(t, r.Stored, r.Replayed)
	}
}

func TestReplaySession_DetectsTamperedOutcome(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	g := createTestGesture(t, "s1", "c1", 200, 1)
	_, err := s.WriteGesture(ctx, g)
	require.NoError(t, err)

	_, err = s.db.Exec(`UPDATE gestures SET direction = 'left' WHERE id = ?`, g.ID)
	require.NoError(t, err)

	reports, err := s.ReplaySession(ctx, "")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].Match)
	assert.True(t, reports[0].IDMatch, "outcome is not part of the identity")
	assert.Equal(t, "right", reports[0].Replayed.Direction)
	assert.False(t, reports[0].OK())
}

func TestReplaySession_DetectsTamperedSamples(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	g := createTestGesture(t, "s1", "c1", 200, 1)
	_, err := s.WriteGesture(ctx, g)
	require.NoError(t, err)

	_, err = s.db.Exec(`UPDATE gestures SET samples = ? WHERE id = ?`,
		`[{"op":"start","x":0,"y":0,"at_ns":0},{"op":"move","x":20,"y":0,"at_ns":1000000000},{"op":"end","x":0,"y":0,"at_ns":1000000000}]`, g.ID)
	require.NoError(t, err)

	reports, err := s.ReplaySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].IDMatch)
	assert.False(t, reports[0].Match)
}

func TestReplaySession_Cancelled(t *testing.T) {
	s := createTestStore(t)
	_, err := s.WriteGesture(context.Background(), createTestGesture(t, "s1", "c1", 200, 1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.ReplaySession(ctx, "s1")
	assert.ErrorIs(t, err, context.Canceled)
}
