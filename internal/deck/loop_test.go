package deck_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pawswipe/internal/deck"
	"github.com/roach88/pawswipe/internal/swipe"
	"github.com/roach88/pawswipe/internal/testutil"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newLoop(t *testing.T, cs []deck.Card, opts ...deck.Option) *deck.Loop {
	t.Helper()
	all := []deck.Option{
		deck.WithIDGenerator(testutil.NewFixedIDGenerator("loop-session")),
		deck.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return deck.NewLoop(cs, swipe.DefaultConfig(), append(all, opts...)...)
}

// swipeRight enqueues a 200px right drag over one second.
func swipeRight(l *deck.Loop, start time.Time) {
	l.Enqueue(deck.Event{Type: deck.EventPointerDown, Pointer: 1, At: start})
	l.Enqueue(deck.Event{Type: deck.EventPointerMove, Pointer: 1, X: 200, At: start.Add(time.Second)})
	l.Enqueue(deck.Event{Type: deck.EventPointerUp, Pointer: 1, At: start.Add(time.Second)})
}

func TestLoop_AppliesQueuedEvents(t *testing.T) {
	var got []deck.Decision
	l := newLoop(t, cards, deck.WithDecisionSink(func(d deck.Decision) {
		got = append(got, d)
	}))

	swipeRight(l, epoch)
	assert.Equal(t, 3, l.Pending())

	l.Stop()
	require.NoError(t, l.Run(context.Background()))

	require.Len(t, got, 1)
	assert.Equal(t, deck.ActionLike, got[0].Action)
	assert.Equal(t, "rex", got[0].Card.ID)
	assert.Equal(t, "loop-session", got[0].SessionID)
	assert.Equal(t, swipe.DirectionRight, got[0].Result.Direction)
	assert.Equal(t, time.Second, got[0].Result.Duration, "duration comes from event timestamps")
	assert.Equal(t, 200.0, got[0].Result.Velocity)
	assert.Equal(t, 2, l.Deck().Remaining())
}

func TestLoop_ZeroTimestampUsesClock(t *testing.T) {
	clock := testutil.NewManualClock()
	l := newLoop(t, cards, deck.WithClock(clock))

	l.Enqueue(deck.Event{Type: deck.EventPointerDown, Pointer: 1})
	l.Enqueue(deck.Event{Type: deck.EventPointerMove, Pointer: 1, X: -200, At: clock.Now().Add(time.Second)})
	l.Enqueue(deck.Event{Type: deck.EventPointerUp, Pointer: 1, At: clock.Now().Add(2 * time.Second)})
	l.Stop()
	require.NoError(t, l.Run(context.Background()))

	decs := l.Deck().Decisions()
	require.Len(t, decs, 1)
	assert.Equal(t, deck.ActionPass, decs[0].Action)
	assert.Equal(t, 2*time.Second, decs[0].Result.Duration)
}

func TestLoop_ConcurrentProducers(t *testing.T) {
	l := newLoop(t, cards)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	// Gestures from separate producers must not interleave, so each
	// producer waits for the previous one.
	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			swipeRight(l, epoch.Add(time.Duration(i)*time.Minute))
		}(i)
	}
	wg.Wait()
	l.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	assert.Len(t, l.Deck().Decisions(), 3)
	assert.Equal(t, 0, l.Deck().Remaining())
}

func TestLoop_ErrorsAreLoggedAndSkipped(t *testing.T) {
	var logs bytes.Buffer
	l := newLoop(t, cards[:1],
		deck.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	swipeRight(l, epoch)
	// The deck is now empty; this press fails and the loop moves on.
	l.Enqueue(deck.Event{Type: deck.EventPointerDown, Pointer: 1, At: epoch.Add(time.Minute)})
	l.Enqueue(deck.Event{Type: deck.EventInterrupt, At: epoch.Add(time.Minute)})
	l.Stop()

	require.NoError(t, l.Run(context.Background()))
	assert.Len(t, l.Deck().Decisions(), 1)
	assert.Contains(t, logs.String(), "deck event failed")
	assert.Contains(t, logs.String(), "event=pointer_down")
}

func TestLoop_UnknownEventType(t *testing.T) {
	var logs bytes.Buffer
	l := newLoop(t, cards,
		deck.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	l.Enqueue(deck.Event{Type: deck.EventType(99)})
	l.Stop()

	require.NoError(t, l.Run(context.Background()))
	assert.Contains(t, logs.String(), "unknown event type: 99")
}

func TestLoop_ContextCancelStops(t *testing.T) {
	l := newLoop(t, cards)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, l.Enqueue(deck.Event{Type: deck.EventInterrupt}), "closed loop rejects events")
}

func TestNewLoop_AppliesOptionsOnce(t *testing.T) {
	calls := 0
	counting := func(*deck.Deck) { calls++ }

	l := newLoop(t, cards, counting)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "loop-session", l.Deck().Session())
}
