package deck

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/pawswipe/internal/metrics"
	"github.com/roach88/pawswipe/internal/spring"
	"github.com/roach88/pawswipe/internal/store"
	"github.com/roach88/pawswipe/internal/swipe"
	"github.com/roach88/pawswipe/internal/trace"
)

// DefaultFlingDistance is how far a committed card is thrown, in pixels.
const DefaultFlingDistance = 600

// Option configures a Deck.
type Option func(*Deck)

// WithClock sets the time source handed to the engine.
func WithClock(c swipe.Clock) Option {
	return func(d *Deck) { d.clock = c }
}

// WithHaptics sets the haptic sink handed to the engine.
func WithHaptics(h swipe.Haptics) Option {
	return func(d *Deck) { d.haptics = h }
}

// WithFrames sets the frame scheduler handed to the engine.
func WithFrames(f swipe.FrameScheduler) Option {
	return func(d *Deck) { d.frames = f }
}

// WithStore appends every finished gesture and decision to s.
func WithStore(s *store.Store) Option {
	return func(d *Deck) { d.store = s }
}

// WithMetrics records telemetry into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(d *Deck) { d.metrics = c }
}

// WithLogger sets the logger for the deck and its engine.
func WithLogger(l *slog.Logger) Option {
	return func(d *Deck) { d.logger = l }
}

// WithIDGenerator sets the session ID source. Defaults to UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(d *Deck) { d.ids = g }
}

// WithSequencer sets the logical clock. Use NewSequencerAt to continue a log.
func WithSequencer(s *Sequencer) Option {
	return func(d *Deck) { d.seq = s }
}

// WithDecisionSink sets a callback invoked for every decision.
func WithDecisionSink(fn func(Decision)) Option {
	return func(d *Deck) { d.onDecision = fn }
}

// WithFPS sets the frame rate of settle and fling animations.
func WithFPS(fps int) Option {
	return func(d *Deck) { d.fps = fps }
}

// WithFlingDistance sets how far committed cards are thrown.
func WithFlingDistance(px float64) Option {
	return func(d *Deck) { d.flingDistance = px }
}

// Deck is a swipeable queue of cards driven by pointer events.
type Deck struct {
	cfg   swipe.Config
	cards []Card
	pos   int

	clock   swipe.Clock
	haptics swipe.Haptics
	frames  swipe.FrameScheduler
	store   *store.Store
	metrics *metrics.Collector
	logger  *slog.Logger
	ids     IDGenerator
	seq     *Sequencer

	onDecision    func(Decision)
	fps           int
	flingDistance float64

	rec     *trace.Recorder
	session string

	pointer     int
	pointerDown bool
	lastState   swipe.State
	offset      swipe.Offset

	decisions []Decision
	gestures  []store.Gesture
	animation Animation
}

// New creates a deck over cards. The cards slice is copied.
func New(cards []Card, cfg swipe.Config, opts ...Option) *Deck {
	return build(cards, cfg, opts, nil)
}

// build applies opts once. wrapClock, when set, replaces the configured
// clock before the recorder is created.
func build(cards []Card, cfg swipe.Config, opts []Option, wrapClock func(swipe.Clock) swipe.Clock) *Deck {
	d := &Deck{
		cfg:           cfg,
		cards:         append([]Card(nil), cards...),
		clock:         swipe.SystemClock{},
		haptics:       swipe.NopHaptics{},
		frames:        swipe.NopFrames{},
		logger:        slog.Default(),
		ids:           UUIDv7Generator{},
		fps:           spring.DefaultFPS,
		flingDistance: DefaultFlingDistance,
		offset:        swipe.RestOffset,
		decisions:     []Decision{},
		gestures:      []store.Gesture{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.seq == nil {
		d.seq = NewSequencer()
	}
	if wrapClock != nil {
		d.clock = wrapClock(d.clock)
	}

	d.session = d.ids.Generate()
	d.rec = trace.NewRecorder(cfg, d.clock,
		swipe.WithHaptics(d.haptics),
		swipe.WithFrames(d.frames),
		swipe.WithLogger(d.logger),
		swipe.WithStateChange(d.stateChanged),
	)
	return d
}

// Session returns the session ID stamped on every gesture.
func (d *Deck) Session() string {
	return d.session
}

// Current returns the top card, or false when the deck is exhausted.
func (d *Deck) Current() (Card, bool) {
	if d.pos >= len(d.cards) {
		return Card{}, false
	}
	return d.cards[d.pos], true
}

// Remaining returns the number of undecided cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.pos
}

// Engine returns the engine driving the current card.
func (d *Deck) Engine() *swipe.Engine {
	return d.rec.Engine()
}

// Offset returns the current visual transform of the top card.
func (d *Deck) Offset() swipe.Offset {
	return d.offset
}

// Active reports whether a pointer is driving a gesture.
func (d *Deck) Active() bool {
	return d.pointerDown
}

// Decisions returns every decision taken in this session.
func (d *Deck) Decisions() []Decision {
	return append([]Decision(nil), d.decisions...)
}

// Gestures returns every finished gesture of this session in order.
func (d *Deck) Gestures() []store.Gesture {
	return append([]store.Gesture(nil), d.gestures...)
}

// LastAnimation returns the spring motion played after the latest gesture.
func (d *Deck) LastAnimation() Animation {
	return d.animation
}

// PointerDown starts a gesture on the top card. A second pointer while one is
// active cancels the gesture instead.
func (d *Deck) PointerDown(ctx context.Context, id int, x, y float64) error {
	if d.pointerDown {
		if id == d.pointer {
			return nil
		}
		d.logger.Debug("second pointer cancels gesture", "pointer", id, "active", d.pointer)
		return d.cancel(ctx)
	}
	if _, ok := d.Current(); !ok {
		return ErrDeckEmpty
	}

	d.pointer = id
	d.pointerDown = true
	d.lastState = swipe.StateIdle
	d.offset = swipe.RestOffset
	d.rec.Start(x, y)
	return nil
}

// PointerMove feeds a position. Events from other pointers are ignored.
func (d *Deck) PointerMove(id int, x, y float64) {
	if !d.pointerDown || id != d.pointer {
		return
	}
	d.rec.Move(x, y)
}

// PointerUp ends the gesture. It returns the decision when the gesture
// commits and nil when the card settles back.
func (d *Deck) PointerUp(ctx context.Context, id int) (*Decision, error) {
	if !d.pointerDown || id != d.pointer {
		return nil, nil
	}
	d.pointerDown = false

	release := d.rec.Engine().Metrics().Velocity
	res, ok := d.rec.End()
	if !ok {
		if _, err := d.finish(ctx, metrics.OutcomeAbandoned); err != nil {
			return nil, err
		}
		d.settle(release.X(), release.Y())
		return nil, nil
	}
	return d.commit(ctx, res, release.X(), release.Y())
}

// Interrupt cancels the active gesture, for example when the app loses focus.
func (d *Deck) Interrupt(ctx context.Context) error {
	if !d.pointerDown {
		return nil
	}
	return d.cancel(ctx)
}

func (d *Deck) cancel(ctx context.Context) error {
	d.pointerDown = false
	d.rec.Cancel()
	if _, err := d.finish(ctx, metrics.OutcomeCancelled); err != nil {
		return err
	}
	d.settle(0, 0)
	return nil
}

func (d *Deck) commit(ctx context.Context, res swipe.Result, vx, vy float64) (*Decision, error) {
	card := d.cards[d.pos]
	action, _ := ActionFor(res.Direction)

	gestureID, err := d.finish(ctx, metrics.OutcomeCommitted)
	if err != nil {
		return nil, err
	}

	dec := Decision{
		SessionID: d.session,
		Card:      card,
		Action:    action,
		GestureID: gestureID,
		Seq:       d.seq.Next(),
		Result:    res,
	}
	if d.store != nil {
		_, err := d.store.WriteDecision(ctx, store.Decision{
			SessionID: dec.SessionID,
			CardID:    card.ID,
			Action:    string(action),
			GestureID: gestureID,
			Seq:       dec.Seq,
		})
		if err != nil {
			d.metrics.RecordStoreError()
			return nil, fmt.Errorf("record decision for %s: %w", card.ID, err)
		}
	}

	d.decisions = append(d.decisions, dec)
	d.metrics.RecordDecision(string(action))
	d.metrics.RecordCommit(res)
	d.logger.Info("card decided",
		"session", d.session,
		"card", card.ID,
		"action", action,
		"distance", res.Distance,
		"velocity", res.Velocity,
	)

	d.fling(res.Direction, vx, vy)
	d.pos++
	if d.onDecision != nil {
		d.onDecision(dec)
	}
	return &dec, nil
}

// finish records the gesture that just ended and returns its ID.
func (d *Deck) finish(ctx context.Context, outcome string) (string, error) {
	card, _ := d.Current()
	g, err := store.NewGesture(d.rec.Recording(d.session, card.ID), d.seq.Next())
	if err != nil {
		return "", fmt.Errorf("record gesture: %w", err)
	}

	if d.store != nil {
		if _, err := d.store.WriteGesture(ctx, g); err != nil {
			d.metrics.RecordStoreError()
			return "", fmt.Errorf("record gesture on %s: %w", card.ID, err)
		}
	}

	d.gestures = append(d.gestures, g)
	d.metrics.RecordGesture(outcome)
	d.logger.Debug("gesture finished",
		"card", card.ID,
		"outcome", outcome,
		"gesture", g.ID,
		"samples", len(g.Samples),
	)
	return g.ID, nil
}

func (d *Deck) settle(vx, vy float64) {
	frames, err := spring.Settle(d.cfg.Spring, d.offset,
		spring.WithFPS(d.fps), spring.WithVelocity(vx, vy))
	d.play(AnimationSettle, frames, err)
}

func (d *Deck) fling(dir swipe.Direction, vx, vy float64) {
	frames, err := spring.Fling(d.cfg.Spring, d.offset, dir, d.flingDistance,
		spring.WithFPS(d.fps), spring.WithVelocity(vx, vy))
	d.play(AnimationFling, frames, err)
}

// play records the animation and leaves the next card at rest. An invalid
// spring skips the animation; the card still snaps to rest.
func (d *Deck) play(kind string, frames []swipe.Offset, err error) {
	if err != nil {
		d.logger.Warn("skipping card animation", "kind", kind, "error", err)
		frames = []swipe.Offset{}
	}
	d.animation = Animation{Kind: kind, Frames: frames}
	d.metrics.RecordAnimation(kind, len(frames))
	d.offset = swipe.RestOffset
}

func (d *Deck) stateChanged(s swipe.State, _ swipe.Metrics) {
	d.offset = d.rec.Engine().ClampedOffset()
	if s != d.lastState {
		d.metrics.RecordStateEntry(s)
		d.lastState = s
	}
}
