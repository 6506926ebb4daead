package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const gestureColumns = `id, session_id, card_id, seq, config, samples, state, committed, direction, distance, velocity, duration_ns`

// ReadGesture retrieves a single gesture by ID.
// Returns an error wrapping ErrNotFound if it does not exist.
func (s *Store) ReadGesture(ctx context.Context, id string) (Gesture, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+gestureColumns+`
		FROM gestures
		WHERE id = ?
	`, id)

	g, err := scanGesture(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Gesture{}, fmt.Errorf("read gesture %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Gesture{}, fmt.Errorf("read gesture %s: %w", id, err)
	}
	return g, nil
}

// ListGestures returns the gestures of a session in log order.
// An empty sessionID lists every gesture.
func (s *Store) ListGestures(ctx context.Context, sessionID string) ([]Gesture, error) {
	query := `SELECT ` + gestureColumns + ` FROM gestures`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query gestures: %w", err)
	}
	defer rows.Close()

	gestures := []Gesture{}
	for rows.Next() {
		g, err := scanGesture(rows)
		if err != nil {
			return nil, err
		}
		gestures = append(gestures, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gestures: %w", err)
	}
	return gestures, nil
}

// ListSessions returns every session that recorded a gesture, ordered by
// its first gesture.
func (s *Store) ListSessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id FROM gestures
		GROUP BY session_id
		ORDER BY MIN(seq) ASC, session_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ListDecisions returns the decisions of a session in log order.
func (s *Store) ListDecisions(ctx context.Context, sessionID string) ([]Decision, error) {
	return s.queryDecisions(ctx, `
		SELECT session_id, card_id, action, gesture_id, seq
		FROM decisions
		WHERE session_id = ?
		ORDER BY seq ASC, id ASC
	`, sessionID)
}

// ListCardDecisions returns every decision taken on a card across sessions.
func (s *Store) ListCardDecisions(ctx context.Context, cardID string) ([]Decision, error) {
	return s.queryDecisions(ctx, `
		SELECT session_id, card_id, action, gesture_id, seq
		FROM decisions
		WHERE card_id = ?
		ORDER BY seq ASC, id ASC
	`, cardID)
}

func (s *Store) queryDecisions(ctx context.Context, query string, arg string) ([]Decision, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	decisions := []Decision{}
	for rows.Next() {
		var d Decision
		if err := rows.Scan(&d.SessionID, &d.CardID, &d.Action, &d.GestureID, &d.Seq); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return decisions, nil
}

// GetLastSeq returns the highest seq number used in the store.
// Used to resume the logical clock from the correct position.
func (s *Store) GetLastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(
			(SELECT COALESCE(MAX(seq), 0) FROM gestures),
			(SELECT COALESCE(MAX(seq), 0) FROM decisions)
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("get last seq: %w", err)
	}
	return seq, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGesture(sc scanner) (Gesture, error) {
	var (
		g           Gesture
		configJSON  string
		samplesJSON string
		committed   int
	)
	err := sc.Scan(
		&g.ID,
		&g.SessionID,
		&g.CardID,
		&g.Seq,
		&configJSON,
		&samplesJSON,
		&g.Outcome.State,
		&committed,
		&g.Outcome.Direction,
		&g.Outcome.Distance,
		&g.Outcome.Velocity,
		&g.Outcome.DurationNanos,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Gesture{}, err
		}
		return Gesture{}, fmt.Errorf("scan gesture: %w", err)
	}
	g.Outcome.Committed = committed == 1

	if g.Config, err = unmarshalConfig(configJSON); err != nil {
		return Gesture{}, err
	}
	if g.Samples, err = unmarshalSamples(samplesJSON); err != nil {
		return Gesture{}, err
	}
	return g, nil
}
