package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/pawswipe/internal/swipe"
	"github.com/roach88/pawswipe/internal/trace"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestGesture builds a committed right swipe with a consistent outcome.
// dx varies the content and therefore the ID.
func createTestGesture(t *testing.T, session, card string, dx float64, seq int64) Gesture {
	t.Helper()
	rec := trace.Recording{
		SessionID: session,
		CardID:    card,
		Config:    swipe.DefaultConfig(),
		Samples: []trace.Sample{
			{Op: trace.OpStart},
			{Op: trace.OpMove, X: dx, AtNanos: 1e9},
			{Op: trace.OpEnd, AtNanos: 1e9},
		},
	}
	out, err := trace.Replay(rec)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	rec.Outcome = out

	g, err := NewGesture(rec, seq)
	if err != nil {
		t.Fatalf("NewGesture() failed: %v", err)
	}
	return g
}
