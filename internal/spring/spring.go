// Package spring turns a swipe.SpringConfig into frame-by-frame card motion.
//
// The swipe engine only carries spring parameters. Hosts use Settle to
// return an abandoned card to rest and Fling to throw a committed card off
// screen. Both run a damped harmonic oscillator per axis
// (github.com/charmbracelet/harmonica) at a fixed frame rate.
package spring

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/roach88/pawswipe/internal/swipe"
)

const (
	// DefaultFPS is the frame rate used when none is given.
	DefaultFPS = 60

	// MaxFrames caps an animation. The last frame is forced to the target.
	MaxFrames = 600

	// FlingRotation is the card rotation in degrees at the end of a fling.
	FlingRotation = 30.0
)

// Rest tolerances per axis. Rotation is in degrees, scale is unitless.
const (
	restDistance = 0.5
	restScale    = 0.001
)

// ErrInvalidSpring is returned for non-positive spring parameters.
var ErrInvalidSpring = errors.New("spring parameters must be positive")

// Params converts physical parameters to harmonica's parameterization:
// angular frequency sqrt(k/m) and damping ratio c / (2*sqrt(k*m)).
func Params(c swipe.SpringConfig) (angularFrequency, dampingRatio float64, err error) {
	if !(c.Stiffness > 0) || !(c.Damping > 0) || !(c.Mass > 0) {
		return 0, 0, fmt.Errorf("%w: %+v", ErrInvalidSpring, c)
	}
	angularFrequency = math.Sqrt(c.Stiffness / c.Mass)
	dampingRatio = c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
	return angularFrequency, dampingRatio, nil
}

// Option configures an animation.
type Option func(*animation)

// WithFPS sets the frame rate. Non-positive values keep DefaultFPS.
func WithFPS(fps int) Option {
	return func(a *animation) {
		if fps > 0 {
			a.fps = fps
		}
	}
}

// WithVelocity sets the initial X and Y velocity in pixels per second,
// typically the release velocity of the gesture.
func WithVelocity(vx, vy float64) Option {
	return func(a *animation) {
		a.vel[axisX], a.vel[axisY] = vx, vy
	}
}

const (
	axisX = iota
	axisY
	axisRotation
	axisScale
	axisCount
)

type animation struct {
	fps int
	vel [axisCount]float64
}

// Animate springs from toward to and returns one offset per frame.
// The final frame equals to exactly.
func Animate(cfg swipe.SpringConfig, from, to swipe.Offset, opts ...Option) ([]swipe.Offset, error) {
	a := animation{fps: DefaultFPS}
	for _, opt := range opts {
		opt(&a)
	}

	freq, damping, err := Params(cfg)
	if err != nil {
		return nil, err
	}
	s := harmonica.NewSpring(harmonica.FPS(a.fps), freq, damping)

	pos := components(from)
	target := components(to)
	vel := a.vel

	frames := []swipe.Offset{}
	for len(frames) < MaxFrames-1 {
		for i := range pos {
			pos[i], vel[i] = s.Update(pos[i], vel[i], target[i])
		}
		if atRest(pos, vel, target) {
			break
		}
		frames = append(frames, offsetOf(pos))
	}
	return append(frames, to), nil
}

// Settle returns the card from an offset to rest.
func Settle(cfg swipe.SpringConfig, from swipe.Offset, opts ...Option) ([]swipe.Offset, error) {
	return Animate(cfg, from, swipe.RestOffset, opts...)
}

// Fling throws the card distance pixels off screen in direction dir.
func Fling(cfg swipe.SpringConfig, from swipe.Offset, dir swipe.Direction, distance float64, opts ...Option) ([]swipe.Offset, error) {
	var sign float64
	switch dir {
	case swipe.DirectionRight:
		sign = 1
	case swipe.DirectionLeft:
		sign = -1
	default:
		return nil, fmt.Errorf("fling needs a direction, got %s", dir)
	}
	to := swipe.Offset{
		X:        sign * math.Abs(distance),
		Y:        from.Y,
		Rotation: sign * FlingRotation,
		Scale:    from.Scale,
	}
	return Animate(cfg, from, to, opts...)
}

func components(o swipe.Offset) [axisCount]float64 {
	return [axisCount]float64{o.X, o.Y, o.Rotation, o.Scale}
}

func offsetOf(c [axisCount]float64) swipe.Offset {
	return swipe.Offset{X: c[axisX], Y: c[axisY], Rotation: c[axisRotation], Scale: c[axisScale]}
}

func atRest(pos, vel, target [axisCount]float64) bool {
	for i := range pos {
		tol := restDistance
		if i == axisScale {
			tol = restScale
		}
		if math.Abs(pos[i]-target[i]) >= tol || math.Abs(vel[i]) >= tol {
			return false
		}
	}
	return true
}
