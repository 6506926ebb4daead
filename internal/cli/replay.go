package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pawswipe/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	SessionID     string               `json:"session_id"`
	Gestures      int                  `json:"gestures"`
	Committed     int                  `json:"committed"`
	Decisions     int                  `json:"decisions"`
	Deterministic bool                 `json:"deterministic"`
	Failures      []store.ReplayReport `json:"failures,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	TotalSessions    int                   `json:"total_sessions"`
	TotalGestures    int                   `json:"total_gestures"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the gesture log and verify determinism",
		Long: `Replay every stored gesture through a fresh engine and compare outcomes.

A gesture is deterministic when its replayed outcome equals the stored one
and its content still hashes to its stored ID.

Exit codes:
  0 - All gestures are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, etc.)

Examples:
  pawswipe replay --db ./pawswipe.db
  pawswipe replay --db ./pawswipe.db --session 01890a5d-ac96-774b-bcce-b302099a8057
  pawswipe replay --db ./pawswipe.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to PAWSWIPE_DB)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "replay specific session only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := opts.formatter(cmd)

	path, err := opts.database(opts.Database)
	if err != nil {
		return err
	}
	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	// Get sessions to process
	var sessions []string
	if opts.Session != "" {
		sessions = []string{opts.Session}
	} else {
		sessions, err = st.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
	}

	result := ReplayResult{
		Sessions:         make([]ReplaySessionResult, 0, len(sessions)),
		TotalSessions:    len(sessions),
		AllDeterministic: true,
	}

	for _, session := range sessions {
		sr, err := replaySession(cmd, st, session)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", session), err)
		}
		result.Sessions = append(result.Sessions, sr)
		result.TotalGestures += sr.Gestures
		if !sr.Deterministic {
			result.AllDeterministic = false
		}
		opts.Logger().Debug("session replayed", "session", session, "gestures", sr.Gestures, "deterministic", sr.Deterministic)
	}

	if len(sessions) == 0 {
		if out.JSON() {
			return out.Success(result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found in database.")
		return nil
	}

	for _, sr := range result.Sessions {
		mark := "✓"
		if !sr.Deterministic {
			mark = "✗"
		}
		out.Printf("%s %s: %d gesture(s), %d committed, %d decision(s)\n",
			mark, sr.SessionID, sr.Gestures, sr.Committed, sr.Decisions)
		for _, f := range sr.Failures {
			out.Printf("  gesture %s (seq %d): %s\n", shortID(f.GestureID), f.Seq, describeFailure(f))
		}
	}

	if !result.AllDeterministic {
		msg := "replay produced different outcomes"
		if out.JSON() {
			if err := out.Failure(CodeReplayMismatch, msg, result); err != nil {
				return err
			}
		}
		return NewExitError(ExitFailure, msg)
	}

	if out.JSON() {
		return out.Success(result)
	}
	out.Printf("\nAll %d gesture(s) in %d session(s) are deterministic\n", result.TotalGestures, result.TotalSessions)
	return nil
}

// replaySession verifies every gesture of one session.
func replaySession(cmd *cobra.Command, st *store.Store, session string) (ReplaySessionResult, error) {
	ctx := cmd.Context()

	reports, err := st.ReplaySession(ctx, session)
	if err != nil {
		return ReplaySessionResult{}, err
	}
	decisions, err := st.ListDecisions(ctx, session)
	if err != nil {
		return ReplaySessionResult{}, err
	}

	sr := ReplaySessionResult{
		SessionID:     session,
		Gestures:      len(reports),
		Decisions:     len(decisions),
		Deterministic: true,
	}
	for _, r := range reports {
		if r.Stored.Committed {
			sr.Committed++
		}
		if !r.OK() {
			sr.Deterministic = false
			sr.Failures = append(sr.Failures, r)
		}
	}
	return sr, nil
}

func describeFailure(r store.ReplayReport) string {
	switch {
	case r.Error != "":
		return r.Error
	case !r.IDMatch:
		return "content no longer matches its ID"
	default:
		return fmt.Sprintf("stored %s/%s, replayed %s/%s",
			r.Stored.State, r.Stored.Direction, r.Replayed.State, r.Replayed.Direction)
	}
}
