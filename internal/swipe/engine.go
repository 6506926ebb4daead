package swipe

import (
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Visual tuning for ClampedOffset.
const (
	verticalFollow = 0.3  // y follows at 30% of the clamped ratio
	maxRotation    = 15.0 // degrees at CommitThreshold
	minScale       = 0.9
)

// Option configures an Engine.
type Option func(*Engine)

// WithHaptics sets the haptic feedback sink.
func WithHaptics(h Haptics) Option {
	return func(e *Engine) { e.haptics = h }
}

// WithClock sets the time source used for velocity and duration.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithFrames sets the per-frame scheduler used for the gesture heartbeat.
func WithFrames(f FrameScheduler) Option {
	return func(e *Engine) { e.frames = f }
}

// WithStateChange sets the callback invoked on every Move.
func WithStateChange(fn func(State, Metrics)) Option {
	return func(e *Engine) { e.onStateChange = fn }
}

// WithCommit sets the callback invoked once per committed gesture.
func WithCommit(fn func(Result)) Option {
	return func(e *Engine) { e.onCommit = fn }
}

// WithLogger sets the logger for transition records.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine is the swipe interaction state machine.
//
// One Engine is typically created per card and reused across gestures;
// Start resets every mutable field. An Engine is not safe for concurrent use.
type Engine struct {
	cfg Config

	haptics Haptics
	clock   Clock
	frames  FrameScheduler
	logger  *slog.Logger

	onStateChange func(State, Metrics)
	onCommit      func(Result)

	state    State
	tracking bool

	startPos  mgl64.Vec2
	startTime time.Time
	lastPos   mgl64.Vec2
	lastTime  time.Time
	velocity  mgl64.Vec2
	metrics   Metrics

	// Heartbeat. gen invalidates callbacks from earlier gestures.
	frame      FrameHandle
	frameArmed bool
	gen        uint64
	frameCount int
}

// New creates an Engine with the given configuration.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		haptics: NopHaptics{},
		clock:   SystemClock{},
		frames:  NopFrames{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Start begins a new gesture at (x, y).
func (e *Engine) Start(x, y float64) {
	e.stopHeartbeat()

	now := e.clock.Now()
	p := mgl64.Vec2{x, y}

	e.state = StateIdle
	e.tracking = true
	e.startPos, e.lastPos = p, p
	e.startTime, e.lastTime = now, now
	e.velocity = mgl64.Vec2{}
	e.metrics = Metrics{Position: p, Timestamp: now}
	e.frameCount = 0
	e.gen++

	e.scheduleHeartbeat()
}

// Move feeds the current pointer position of an active gesture.
// It is ignored when no gesture is active.
func (e *Engine) Move(x, y float64) {
	if !e.tracking {
		return
	}

	now := e.clock.Now()
	p := mgl64.Vec2{x, y}

	// A non-positive dt keeps the previous velocity.
	if dt := now.Sub(e.lastTime); dt > 0 {
		e.velocity = p.Sub(e.lastPos).Mul(1 / dt.Seconds())
	}
	e.lastPos = p
	e.lastTime = now

	e.metrics = e.measure(p, now)
	e.classify()

	if e.onStateChange != nil {
		e.onStateChange(e.state, e.metrics)
	}
}

// End finalizes the gesture. It returns the Result and true when the
// gesture commits, and false when it is abandoned (the engine resets to idle).
func (e *Engine) End() (Result, bool) {
	if !e.tracking {
		return Result{}, false
	}
	e.tracking = false
	e.stopHeartbeat()

	now := e.clock.Now()
	e.metrics = e.measure(e.lastPos, e.lastTime)

	if !e.commits() {
		e.transition(StateIdle)
		return Result{}, false
	}

	res := Result{
		Direction: directionOf(e.metrics.Delta.X()),
		Distance:  e.metrics.Distance,
		Velocity:  e.velocity.Len(),
		Duration:  now.Sub(e.startTime),
		Frames:    e.frameCount,
	}
	e.transition(StateCommitted)
	e.haptics.Impact(IntensityMedium)

	e.logger.Debug("swipe committed",
		"direction", res.Direction,
		"distance", res.Distance,
		"velocity", res.Velocity,
		"duration", res.Duration,
	)

	if e.onCommit != nil {
		e.onCommit(res)
	}
	return res, true
}

// Cancel aborts the active gesture without evaluating a commit or invoking
// callbacks. Calling it while idle is a no-op. A committed gesture stays
// committed until the next Start.
func (e *Engine) Cancel() {
	e.tracking = false
	e.stopHeartbeat()
	e.velocity = mgl64.Vec2{}
	e.metrics.Velocity = e.velocity
	if e.state != StateCommitted {
		e.transition(StateIdle)
	}
}

// State returns the current classification.
func (e *Engine) State() State {
	return e.state
}

// Active reports whether a gesture is being tracked.
func (e *Engine) Active() bool {
	return e.tracking
}

// Metrics returns the latest motion snapshot.
func (e *Engine) Metrics() Metrics {
	return e.metrics
}

// Direction returns the horizontal direction of the gesture, or false while
// |deltaX| is below EngageThreshold.
func (e *Engine) Direction() (Direction, bool) {
	dx := e.metrics.Delta.X()
	if math.Abs(dx) < e.cfg.EngageThreshold {
		return DirectionNone, false
	}
	return directionOf(dx), true
}

// Progress returns |deltaX| / CommitThreshold capped at 1.
func (e *Engine) Progress() float64 {
	dx := math.Abs(e.metrics.Delta.X())
	if e.cfg.CommitThreshold <= 0 {
		if dx == 0 {
			return 0
		}
		return 1
	}
	return math.Min(dx/e.cfg.CommitThreshold, 1)
}

// ClampedOffset derives the card transform from the current delta.
// The drag distance is capped at CommitThreshold * OverscrollClamp.
func (e *Engine) ClampedOffset() Offset {
	dx, dy := e.metrics.Delta.X(), e.metrics.Delta.Y()
	commit := e.cfg.CommitThreshold

	maxDist := math.Max(commit*e.cfg.OverscrollClamp, 0)
	ratio := 1.0
	if dist := math.Hypot(dx, dy); dist > maxDist && dist > 0 {
		ratio = maxDist / dist
	}

	off := Offset{
		X:     dx * ratio,
		Y:     dy * ratio * verticalFollow,
		Scale: 1,
	}
	if commit > 0 {
		off.Rotation = off.X / commit * maxRotation
		off.Scale = 1 - (1-minScale)*math.Min(math.Abs(off.X)/commit, 1)
	}
	return off
}

// SpringConfig returns the configured spring parameters verbatim.
func (e *Engine) SpringConfig() SpringConfig {
	return e.cfg.Spring
}

func (e *Engine) measure(p mgl64.Vec2, at time.Time) Metrics {
	delta := p.Sub(e.startPos)
	return Metrics{
		Position:  p,
		Velocity:  e.velocity,
		Delta:     delta,
		Distance:  delta.Len(),
		Angle:     math.Atan2(delta.Y(), delta.X()) * 180 / math.Pi,
		Timestamp: at,
	}
}

// escapes reports the fast-flick override.
func (e *Engine) escapes() bool {
	return math.Abs(e.velocity.X()) > e.cfg.VelocityEscape &&
		e.metrics.Distance > e.cfg.EngageThreshold
}

func (e *Engine) commits() bool {
	return e.metrics.Distance >= e.cfg.CommitThreshold || e.escapes()
}

func (e *Engine) classify() {
	d := e.metrics.Distance

	switch {
	case e.escapes(), d >= e.cfg.CommitThreshold:
		if e.state != StateCommitting {
			e.transition(StateCommitting)
			e.haptics.Impact(IntensityHeavy)
		}
	case d >= e.cfg.IntentThreshold:
		if e.state != StateIntent && e.state != StateCommitting {
			e.transition(StateIntent)
			e.haptics.Impact(IntensityLight)
		}
	case d >= e.cfg.EngageThreshold:
		if e.state == StateIdle {
			e.transition(StateEngaged)
			e.haptics.Selection()
		}
	}
}

func (e *Engine) transition(to State) {
	if e.state == to {
		return
	}
	e.logger.Debug("swipe state transition",
		"from", e.state,
		"to", to,
		"distance", e.metrics.Distance,
	)
	e.state = to
}

func (e *Engine) scheduleHeartbeat() {
	gen := e.gen
	e.frame = e.frames.RequestFrame(func() { e.heartbeat(gen) })
	e.frameArmed = true
}

func (e *Engine) heartbeat(gen uint64) {
	if gen != e.gen || !e.tracking {
		return
	}
	e.frameArmed = false
	e.frameCount++
	e.scheduleHeartbeat()
}

func (e *Engine) stopHeartbeat() {
	if !e.frameArmed {
		return
	}
	e.frames.CancelFrame(e.frame)
	e.frameArmed = false
}
