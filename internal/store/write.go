package store

import (
	"context"
	"fmt"

	"github.com/roach88/pawswipe/internal/trace"
)

// Gesture is a stored recording with its identity and logical position.
type Gesture struct {
	ID  string `json:"id"`
	Seq int64  `json:"seq"`
	trace.Recording
}

// NewGesture stamps rec with its content-addressed ID at log position seq.
func NewGesture(rec trace.Recording, seq int64) (Gesture, error) {
	id, err := trace.GestureID(rec, seq)
	if err != nil {
		return Gesture{}, fmt.Errorf("new gesture: %w", err)
	}
	return Gesture{ID: id, Seq: seq, Recording: rec}, nil
}

// Decision is a like/pass verdict recorded for a committed gesture.
type Decision struct {
	SessionID string `json:"session_id"`
	CardID    string `json:"card_id"`
	Action    string `json:"action"`
	GestureID string `json:"gesture_id"`
	Seq       int64  `json:"seq"`
}

// WriteGesture inserts a gesture record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: the same recording written
// twice keeps its first seq. Returns whether a row was inserted.
func (s *Store) WriteGesture(ctx context.Context, g Gesture) (bool, error) {
	if g.ID == "" {
		return false, fmt.Errorf("write gesture: empty id")
	}

	configJSON, err := marshalConfig(g.Config)
	if err != nil {
		return false, fmt.Errorf("write gesture: %w", err)
	}
	samplesJSON, err := marshalSamples(g.Samples)
	if err != nil {
		return false, fmt.Errorf("write gesture: %w", err)
	}

	committed := 0
	if g.Outcome.Committed {
		committed = 1
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO gestures
		(id, session_id, card_id, seq, config, samples, state, committed, direction, distance, velocity, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		g.ID,
		g.SessionID,
		g.CardID,
		g.Seq,
		configJSON,
		samplesJSON,
		g.Outcome.State,
		committed,
		g.Outcome.Direction,
		g.Outcome.Distance,
		g.Outcome.Velocity,
		g.Outcome.DurationNanos,
	)
	if err != nil {
		return false, fmt.Errorf("write gesture: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write gesture: rows affected: %w", err)
	}
	return rows > 0, nil
}

// WriteDecision inserts a decision. Each gesture yields at most one decision;
// a duplicate is silently ignored and reported as inserted=false.
//
// Note: The gesture referenced by GestureID must exist (foreign key constraint).
func (s *Store) WriteDecision(ctx context.Context, d Decision) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO decisions
		(session_id, card_id, action, gesture_id, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(gesture_id) DO NOTHING
	`,
		d.SessionID,
		d.CardID,
		d.Action,
		d.GestureID,
		d.Seq,
	)
	if err != nil {
		return false, fmt.Errorf("write decision: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write decision: rows affected: %w", err)
	}
	return rows > 0, nil
}
