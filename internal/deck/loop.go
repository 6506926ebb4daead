package deck

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/pawswipe/internal/swipe"
)

// Loop is the single-writer event loop around a Deck.
//
// The swipe engine is not safe for concurrent use. Hosts that deliver input
// from several goroutines enqueue events instead; Run applies them in FIFO
// order on one goroutine.
//
// Thread-safety model:
//   - Enqueue(), Stop(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - Deck(): only from the Run goroutine, or after Run returns
type Loop struct {
	deck   *Deck
	queue  *eventQueue
	clock  *eventClock
	logger *slog.Logger
}

// eventClock reports the timestamp of the event being applied.
type eventClock struct {
	base swipe.Clock
	at   time.Time
}

func (c *eventClock) Now() time.Time {
	if c.at.IsZero() {
		return c.base.Now()
	}
	return c.at
}

// NewLoop creates a Loop over a new Deck. A WithClock option supplies the
// time for events that carry no timestamp.
func NewLoop(cards []Card, cfg swipe.Config, opts ...Option) *Loop {
	clock := &eventClock{}
	d := build(cards, cfg, opts, func(base swipe.Clock) swipe.Clock {
		clock.base = base
		return clock
	})
	return &Loop{
		deck:   d,
		queue:  newEventQueue(),
		clock:  clock,
		logger: d.logger,
	}
}

// Enqueue submits an event. Returns false once the loop has stopped.
func (l *Loop) Enqueue(ev Event) bool {
	return l.queue.Enqueue(ev)
}

// Deck returns the deck driven by the loop.
func (l *Loop) Deck() *Deck {
	return l.deck
}

// Pending returns the number of queued events.
func (l *Loop) Pending() int {
	return l.queue.Len()
}

// Run applies events until ctx is cancelled or Stop is called and the queue
// is drained. A failed event is logged and processing continues.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Debug("deck loop starting", "session", l.deck.Session())

	for {
		if ev, ok := l.queue.TryDequeue(); ok {
			if err := l.apply(ctx, ev); err != nil {
				l.logger.Error("deck event failed",
					"error", err,
					"event", ev.Type,
					"pointer", ev.Pointer,
				)
			}
			continue
		}

		select {
		case <-ctx.Done():
			l.logger.Debug("deck loop stopping: context cancelled")
			l.queue.Close()
			return ctx.Err()

		case <-l.queue.Wait():
			// The signal channel closes with the queue; an empty closed
			// queue ends the loop.
			if l.queue.Len() == 0 && l.queue.Closed() {
				l.logger.Debug("deck loop stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop closes the queue. Run returns after the queued events are applied.
func (l *Loop) Stop() {
	l.queue.Close()
}

// apply routes one event to the deck.
// Called only from the Run goroutine.
func (l *Loop) apply(ctx context.Context, ev Event) error {
	l.clock.at = ev.At
	defer func() { l.clock.at = time.Time{} }()

	switch ev.Type {
	case EventPointerDown:
		return l.deck.PointerDown(ctx, ev.Pointer, ev.X, ev.Y)
	case EventPointerMove:
		l.deck.PointerMove(ev.Pointer, ev.X, ev.Y)
		return nil
	case EventPointerUp:
		_, err := l.deck.PointerUp(ctx, ev.Pointer)
		return err
	case EventInterrupt:
		return l.deck.Interrupt(ctx)
	default:
		return fmt.Errorf("unknown event type: %d", ev.Type)
	}
}
