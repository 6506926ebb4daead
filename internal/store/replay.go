package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/pawswipe/internal/trace"
)

// ReplayReport is the verification result for one stored gesture.
type ReplayReport struct {
	GestureID string        `json:"gesture_id"`
	SessionID string        `json:"session_id"`
	Seq       int64         `json:"seq"`
	Stored    trace.Outcome `json:"stored"`
	Replayed  trace.Outcome `json:"replayed"`
	Match     bool          `json:"match"`
	// IDMatch is false when the stored ID no longer hashes from the content.
	IDMatch bool   `json:"id_match"`
	Error   string `json:"error,omitempty"`
}

// OK reports whether the gesture replayed identically under the same ID.
func (r ReplayReport) OK() bool {
	return r.Match && r.IDMatch && r.Error == ""
}

// ReplaySession re-runs every stored gesture of a session (all sessions when
// sessionID is empty) through a fresh engine and compares outcomes.
// Reports are returned in log order.
func (s *Store) ReplaySession(ctx context.Context, sessionID string) ([]ReplayReport, error) {
	gestures, err := s.ListGestures(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("replay session: %w", err)
	}

	reports := make([]ReplayReport, 0, len(gestures))
	for _, g := range gestures {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		reports = append(reports, replayGesture(g))
	}
	return reports, nil
}

func replayGesture(g Gesture) ReplayReport {
	r := ReplayReport{
		GestureID: g.ID,
		SessionID: g.SessionID,
		Seq:       g.Seq,
		Stored:    g.Outcome,
	}

	id, err := trace.GestureID(g.Recording, g.Seq)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.IDMatch = id == g.ID

	got, err := trace.Verify(g.Recording)
	switch {
	case err == nil:
		r.Match = true
	case errors.Is(err, trace.ErrMismatch):
	default:
		r.Error = err.Error()
	}
	r.Replayed = got
	return r
}
