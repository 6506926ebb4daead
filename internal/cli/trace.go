package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/pawswipe/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Gesture  string // show one gesture
	Session  string // list a session's gestures
}

// TraceSummary is one line of a session listing.
type TraceSummary struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	CardID    string `json:"card_id"`
	Samples   int    `json:"samples"`
	State     string `json:"state"`
	Direction string `json:"direction"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show stored gestures",
		Long: `Show a stored gesture's samples and outcome, or list a session's gestures.

Sample times are relative to the start of the gesture.

Examples:
  pawswipe trace --db ./pawswipe.db --gesture 3f1c9a...
  pawswipe trace --db ./pawswipe.db --session 01890a5d-ac96-774b-bcce-b302099a8057
  pawswipe trace --db ./pawswipe.db --gesture 3f1c9a... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to PAWSWIPE_DB)")
	cmd.Flags().StringVar(&opts.Gesture, "gesture", "", "gesture ID to show")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session ID to list")
	cmd.MarkFlagsOneRequired("gesture", "session")
	cmd.MarkFlagsMutuallyExclusive("gesture", "session")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
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

	if opts.Session != "" {
		return traceSession(cmd, out, st, opts.Session)
	}

	g, err := st.ReadGesture(cmd.Context(), opts.Gesture)
	if errors.Is(err, store.ErrNotFound) {
		msg := fmt.Sprintf("gesture not found: %s", opts.Gesture)
		if err := out.Error(CodeNotFound, msg, nil); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read gesture", err)
	}

	if out.JSON() {
		return out.Success(g)
	}

	out.Printf("Gesture %s\n", g.ID)
	out.Printf("  session=%s card=%s seq=%d\n", g.SessionID, g.CardID, g.Seq)
	out.Printf("  thresholds engage=%g intent=%g commit=%g escape=%g\n",
		g.Config.EngageThreshold, g.Config.IntentThreshold, g.Config.CommitThreshold, g.Config.VelocityEscape)
	out.Printf("\nSamples:\n")
	for i, s := range g.Samples {
		at := time.Duration(s.AtNanos)
		out.Printf("  [%d] %-6s t=%-10s x=%g y=%g\n", i, s.Op, at, s.X, s.Y)
	}
	o := g.Outcome
	out.Printf("\nOutcome: %s", o.State)
	if o.Committed {
		out.Printf(" %s distance=%g velocity=%g duration=%s", o.Direction, o.Distance, o.Velocity, time.Duration(o.DurationNanos))
	}
	out.Printf("\n")
	return nil
}

func traceSession(cmd *cobra.Command, out *OutputFormatter, st *store.Store, session string) error {
	gestures, err := st.ListGestures(cmd.Context(), session)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list gestures", err)
	}

	summaries := make([]TraceSummary, 0, len(gestures))
	for _, g := range gestures {
		summaries = append(summaries, TraceSummary{
			ID:        g.ID,
			Seq:       g.Seq,
			CardID:    g.CardID,
			Samples:   len(g.Samples),
			State:     g.Outcome.State,
			Direction: g.Outcome.Direction,
		})
	}

	if out.JSON() {
		return out.Success(summaries)
	}
	if len(summaries) == 0 {
		out.Printf("No gestures found for session: %s\n", session)
		return nil
	}
	for _, s := range summaries {
		out.Printf("%4d  %s  %-10s %-10s %-5s samples=%d\n", s.Seq, shortID(s.ID), s.CardID, s.State, s.Direction, s.Samples)
	}
	return nil
}
