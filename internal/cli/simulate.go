package cli

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/pawswipe/internal/config"
	"github.com/roach88/pawswipe/internal/deck"
	"github.com/roach88/pawswipe/internal/harness"
	"github.com/roach88/pawswipe/internal/metrics"
	"github.com/roach88/pawswipe/internal/store"
	"github.com/roach88/pawswipe/internal/swipe"
	"github.com/roach88/pawswipe/internal/testutil"
)

// simulatedPointer is the pointer ID used for scripted input.
const simulatedPointer = 1

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Database string
	Profile  string
	Cards    []string
	Session  string
	Metrics  bool
}

// SimulateStep is one executed scenario step as seen by the deck.
type SimulateStep struct {
	Step   int          `json:"step"`
	Op     string       `json:"op"`
	AtMs   float64      `json:"at_ms"`
	State  string       `json:"state"`
	Card   string       `json:"card,omitempty"`
	Offset swipe.Offset `json:"offset"`
	Action string       `json:"action,omitempty"` // set when the step decided a card
}

// SimulateResult holds the simulate output.
type SimulateResult struct {
	Scenario  string          `json:"scenario"`
	Session   string          `json:"session"`
	Steps     []SimulateStep  `json:"steps"`
	Decisions []deck.Decision `json:"decisions"`
	Gestures  []string        `json:"gestures"`
	Remaining int             `json:"remaining"`
	Recorded  bool            `json:"recorded"`
	Metrics   string          `json:"metrics,omitempty"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate <scenario>",
		Short: "Drive a card deck with a scenario",
		Long: `Drive a card deck with the pointer steps of a scenario file.

start, move and end become pointer down, move and up on the top card;
cancel interrupts the gesture; frame flushes animation frames. Every
committed gesture decides the top card (right = like, left = pass).

With --db every finished gesture and decision is appended to the
SQLite gesture log (defaults to PAWSWIPE_DB).

Examples:
  pawswipe simulate scenarios/slow_commit_right.yaml
  pawswipe simulate scenarios/slow_commit_right.yaml --cards rex,luna
  pawswipe simulate scenarios/slow_commit_right.yaml --db ./pawswipe.db --metrics`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record gestures to this SQLite database")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "tuning profile (defaults to PAWSWIPE_PROFILE)")
	cmd.Flags().StringSliceVar(&opts.Cards, "cards", []string{"card-1", "card-2", "card-3"}, "card IDs in deck order")
	cmd.Flags().StringVar(&opts.Session, "session", "", "fixed session ID (default: new UUIDv7)")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print Prometheus metrics after the run")

	return cmd
}

func runSimulate(ctx context.Context, opts *SimulateOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := opts.formatter(cmd)
	logger := opts.Logger()

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	cfg, err := loadConfig(opts.profile(opts.Profile))
	if err != nil {
		return err
	}
	if scenario.Config != nil {
		cfg = cfg.Merge(*scenario.Config)
	}

	cards := make([]deck.Card, len(opts.Cards))
	for i, id := range opts.Cards {
		cards[i] = deck.Card{ID: id}
	}

	clock := testutil.NewManualClock()
	frames := testutil.NewManualFrames()
	collector := metrics.NewCollector("")
	deckOpts := []deck.Option{
		deck.WithClock(clock),
		deck.WithFrames(frames),
		deck.WithMetrics(collector),
		deck.WithLogger(logger),
	}
	if opts.Session != "" {
		deckOpts = append(deckOpts, deck.WithIDGenerator(testutil.NewFixedIDGenerator(opts.Session)))
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = opts.Settings.DB
	}
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		last, err := st.GetLastSeq(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read gesture log", err)
		}
		deckOpts = append(deckOpts, deck.WithStore(st), deck.WithSequencer(deck.NewSequencerAt(last)))
	}

	d := deck.New(cards, cfg, deckOpts...)
	result := SimulateResult{
		Scenario: scenario.Name,
		Session:  d.Session(),
		Steps:    make([]SimulateStep, 0, len(scenario.Steps)),
		Recorded: dbPath != "",
	}

	for i, step := range scenario.Steps {
		if step.AfterMs > 0 {
			clock.Advance(time.Duration(math.Round(step.AfterMs * float64(time.Millisecond))))
		}
		card, _ := d.Current()

		var dec *deck.Decision
		switch step.Op {
		case harness.OpStart:
			err = d.PointerDown(ctx, simulatedPointer, step.X, step.Y)
		case harness.OpMove:
			d.PointerMove(simulatedPointer, step.X, step.Y)
		case harness.OpEnd:
			dec, err = d.PointerUp(ctx, simulatedPointer)
		case harness.OpCancel:
			err = d.Interrupt(ctx)
		case harness.OpFrame:
			n := max(step.Frames, 1)
			for range n {
				frames.Flush()
			}
		}
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("step %d (%s)", i, step.Op), err)
		}

		s := SimulateStep{
			Step:   i,
			Op:     step.Op,
			AtMs:   float64(clock.Elapsed()) / float64(time.Millisecond),
			State:  d.Engine().State().String(),
			Card:   card.ID,
			Offset: d.Offset(),
		}
		if dec != nil {
			s.Action = string(dec.Action)
		}
		result.Steps = append(result.Steps, s)
	}

	result.Decisions = d.Decisions()
	result.Remaining = d.Remaining()
	result.Gestures = []string{}
	for _, g := range d.Gestures() {
		result.Gestures = append(result.Gestures, g.ID)
	}
	if opts.Metrics {
		var buf bytes.Buffer
		if err := collector.WriteText(&buf); err != nil {
			return WrapExitError(ExitCommandError, "failed to render metrics", err)
		}
		result.Metrics = buf.String()
	}

	if out.JSON() {
		return out.Success(result)
	}
	printSimulate(out, result)
	return nil
}

func printSimulate(out *OutputFormatter, r SimulateResult) {
	out.Printf("Scenario: %s\n", r.Scenario)
	out.Printf("Session: %s\n\n", r.Session)
	for _, s := range r.Steps {
		out.Printf("[%d] %-6s t=%gms state=%-10s card=%s offset=(%.1f, %.1f) rot=%.1f scale=%.3f",
			s.Step, s.Op, s.AtMs, s.State, s.Card, s.Offset.X, s.Offset.Y, s.Offset.Rotation, s.Offset.Scale)
		if s.Action != "" {
			out.Printf(" -> %s", s.Action)
		}
		out.Printf("\n")
	}

	out.Printf("\nDecisions: %d (remaining cards: %d)\n", len(r.Decisions), r.Remaining)
	for _, d := range r.Decisions {
		out.Printf("  %s: %s (gesture %s, %.0fpx, %.0fpx/s)\n",
			d.Card.ID, d.Action, shortID(d.GestureID), d.Result.Distance, d.Result.Velocity)
	}
	if r.Recorded {
		out.Printf("Recorded %d gesture(s)\n", len(r.Gestures))
	}
	if r.Metrics != "" {
		out.Printf("\n%s", r.Metrics)
	}
}

// loadConfig returns the profile's config, or the defaults when path is empty.
// Validation issues are not checked here; see the validate command.
func loadConfig(path string) (swipe.Config, error) {
	if path == "" {
		return swipe.DefaultConfig(), nil
	}
	p, err := config.LoadProfile(path)
	if err != nil {
		return swipe.Config{}, WrapExitError(ExitCommandError, "failed to load profile", err)
	}
	return p.Config(), nil
}

// shortID abbreviates a gesture ID for text output.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
