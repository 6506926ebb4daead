package trace

import (
	"errors"
	"fmt"
	"time"

	"github.com/roach88/pawswipe/internal/swipe"
)

var (
	// ErrEmptyRecording is returned when a recording has no samples.
	ErrEmptyRecording = errors.New("recording has no samples")

	// ErrMismatch is returned by Verify when the replayed outcome differs.
	ErrMismatch = errors.New("replay outcome mismatch")
)

// replayEpoch anchors replayed timestamps. Only differences matter.
var replayEpoch = time.Unix(0, 0).UTC()

type replayClock struct {
	now time.Time
}

func (c *replayClock) Now() time.Time { return c.now }

// Replay feeds the samples of rec into a fresh engine configured with
// rec.Config and returns the outcome. opts may add callbacks or a logger;
// the clock is always the replay clock.
func Replay(rec Recording, opts ...swipe.Option) (Outcome, error) {
	if len(rec.Samples) == 0 {
		return Outcome{}, ErrEmptyRecording
	}
	if rec.Samples[0].Op != OpStart {
		return Outcome{}, fmt.Errorf("sample 0: expected %q, got %q", OpStart, rec.Samples[0].Op)
	}

	clock := &replayClock{now: replayEpoch}
	all := make([]swipe.Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, swipe.WithClock(clock))
	e := swipe.New(rec.Config, all...)

	var (
		res       swipe.Result
		committed bool
		at        int64
	)
	for i, s := range rec.Samples {
		clock.now = replayEpoch.Add(time.Duration(s.AtNanos))
		switch s.Op {
		case OpStart:
			e.Start(s.X, s.Y)
			res, committed = swipe.Result{}, false
		case OpMove:
			e.Move(s.X, s.Y)
		case OpEnd:
			res, committed = e.End()
		case OpCancel:
			e.Cancel()
		default:
			return Outcome{}, fmt.Errorf("sample %d: unknown op %q", i, s.Op)
		}
		at = s.AtNanos
	}
	return outcomeOf(e, res, committed, at), nil
}

// Verify replays rec and compares the result with rec.Outcome.
// It returns the replayed outcome; on a difference the error wraps ErrMismatch.
func Verify(rec Recording) (Outcome, error) {
	got, err := Replay(rec)
	if err != nil {
		return Outcome{}, err
	}
	if got != rec.Outcome {
		return got, fmt.Errorf("%w: stored %+v, replayed %+v", ErrMismatch, rec.Outcome, got)
	}
	return got, nil
}
