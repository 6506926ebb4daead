package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/pawswipe/internal/spring"
	"github.com/roach88/pawswipe/internal/swipe"
)

// SettleOptions holds flags for the settle command.
type SettleOptions struct {
	*RootOptions
	Profile  string
	X, Y     float64
	VX, VY   float64
	FPS      int
	Fling    string
	Distance float64
}

// SettleResult holds the simulated trajectory.
type SettleResult struct {
	Kind   string         `json:"kind"` // "settle" or "fling"
	From   swipe.Offset   `json:"from"`
	FPS    int            `json:"fps"`
	Frames []swipe.Offset `json:"frames"`
}

// NewSettleCommand creates the settle command.
func NewSettleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Print a card's spring trajectory",
		Long: `Print the spring trajectory of a card released after a drag of (x, y).

The release offset is the engine's clamped offset for that drag. By default
the card settles back to rest; --fling left|right throws it off screen
instead.

Examples:
  pawswipe settle --x 120 --y 10
  pawswipe settle --x 120 --vx 300 --profile profiles/snappy.yaml
  pawswipe settle --x 180 --fling right --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettle(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Profile, "profile", "", "tuning profile (defaults to PAWSWIPE_PROFILE)")
	cmd.Flags().Float64Var(&opts.X, "x", 0, "drag delta x in pixels")
	cmd.Flags().Float64Var(&opts.Y, "y", 0, "drag delta y in pixels")
	cmd.Flags().Float64Var(&opts.VX, "vx", 0, "release velocity x in pixels per second")
	cmd.Flags().Float64Var(&opts.VY, "vy", 0, "release velocity y in pixels per second")
	cmd.Flags().IntVar(&opts.FPS, "fps", spring.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&opts.Fling, "fling", "", "fling direction instead of settling (left|right)")
	cmd.Flags().Float64Var(&opts.Distance, "distance", 600, "fling target distance in pixels")

	return cmd
}

func runSettle(opts *SettleOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	if opts.FPS <= 0 {
		opts.FPS = spring.DefaultFPS
	}

	cfg, err := loadConfig(opts.profile(opts.Profile))
	if err != nil {
		return err
	}

	from := releaseOffset(cfg, opts.X, opts.Y, opts.Logger())
	animOpts := []spring.Option{spring.WithFPS(opts.FPS), spring.WithVelocity(opts.VX, opts.VY)}

	result := SettleResult{Kind: "settle", From: from, FPS: opts.FPS}
	var frames []swipe.Offset
	if opts.Fling != "" {
		dir, ok := swipe.ParseDirection(opts.Fling)
		if !ok || dir == swipe.DirectionNone {
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid fling direction %q: must be left or right", opts.Fling))
		}
		result.Kind = "fling"
		frames, err = spring.Fling(cfg.Spring, from, dir, opts.Distance, animOpts...)
	} else {
		frames, err = spring.Settle(cfg.Spring, from, animOpts...)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "spring simulation failed", err)
	}
	result.Frames = frames

	if out.JSON() {
		return out.Success(result)
	}

	out.Printf("%s from x=%.2f y=%.2f rot=%.2f scale=%.3f (%d frames at %d fps)\n",
		result.Kind, from.X, from.Y, from.Rotation, from.Scale, len(frames), opts.FPS)
	for i, f := range frames {
		out.Printf("%4d  x=%9.2f y=%8.2f rot=%7.2f scale=%.3f\n", i+1, f.X, f.Y, f.Rotation, f.Scale)
	}
	return nil
}

// releaseOffset runs a one-move gesture through an engine and returns the
// card transform at release.
func releaseOffset(cfg swipe.Config, x, y float64, logger *slog.Logger) swipe.Offset {
	e := swipe.New(cfg, swipe.WithLogger(logger))
	e.Start(0, 0)
	e.Move(x, y)
	return e.ClampedOffset()
}
