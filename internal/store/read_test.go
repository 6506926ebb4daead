package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadGesture_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadGesture(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGestures_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Written out of order.
	for _, g := range []Gesture{
		createTestGesture(t, "s1", "c3", 30, 3),
		createTestGesture(t, "s1", "c1", 10, 1),
		createTestGesture(t, "s2", "c9", 90, 2),
		createTestGesture(t, "s1", "c2", 20, 2),
	} {
		_, err := s.WriteGesture(ctx, g)
		require.NoError(t, err)
	}

	got, err := s.ListGestures(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c1", "c2", "c3"}, []string{got[0].CardID, got[1].CardID, got[2].CardID})

	all, err := s.ListGestures(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, int64(1), all[0].Seq)
	assert.Equal(t, int64(3), all[3].Seq)
	// Equal seq ties break on id.
	assert.Less(t, all[1].ID, all[2].ID)
}

func TestListGestures_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ListGestures(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	sessions, err := s.ListSessions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sessions)

	decisions, err := s.ListDecisions(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, decisions)
}

func TestListSessions_FirstSeen(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, g := range []Gesture{
		createTestGesture(t, "zeta", "c1", 10, 1),
		createTestGesture(t, "alpha", "c1", 20, 2),
		createTestGesture(t, "zeta", "c2", 30, 3),
	} {
		_, err := s.WriteGesture(ctx, g)
		require.NoError(t, err)
	}

	got, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, got)
}

func TestListCardDecisions(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	g1 := createTestGesture(t, "s1", "rex", 200, 1)
	g2 := createTestGesture(t, "s2", "rex", -200, 3)
	for _, g := range []Gesture{g1, g2} {
		_, err := s.WriteGesture(ctx, g)
		require.NoError(t, err)
	}
	_, err := s.WriteDecision(ctx, Decision{SessionID: "s2", CardID: "rex", Action: "pass", GestureID: g2.ID, Seq: 4})
	require.NoError(t, err)
	_, err = s.WriteDecision(ctx, Decision{SessionID: "s1", CardID: "rex", Action: "like", GestureID: g1.ID, Seq: 2})
	require.NoError(t, err)

	got, err := s.ListCardDecisions(ctx, "rex")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "like", got[0].Action)
	assert.Equal(t, "pass", got[1].Action)
}

func TestGetLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.GetLastSeq(ctx)
	require.NoError(t, err)
	assert.Zero(t, seq)

	g := createTestGesture(t, "s1", "c1", 200, 4)
	_, err = s.WriteGesture(ctx, g)
	require.NoError(t, err)
	_, err = s.WriteDecision(ctx, Decision{SessionID: "s1", CardID: "c1", Action: "like", GestureID: g.ID, Seq: 5})
	require.NoError(t, err)

	seq, err = s.GetLastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), seq)
}
