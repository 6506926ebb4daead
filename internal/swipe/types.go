package swipe

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the classification of the current gesture.
// The numeric order is the escalation order.
type State int

const (
	StateIdle State = iota
	StateEngaged
	StateIntent
	StateCommitting
	StateCommitted
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateEngaged:    "engaged",
	StateIntent:     "intent",
	StateCommitting: "committing",
	StateCommitted:  "committed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// ParseState is the inverse of State.String.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return StateIdle, false
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	v, ok := ParseState(string(b))
	if !ok {
		return fmt.Errorf("unknown swipe state %q", b)
	}
	*s = v
	return nil
}

// Direction is the horizontal direction of a swipe.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(name string) (Direction, bool) {
	switch name {
	case "left":
		return DirectionLeft, true
	case "right":
		return DirectionRight, true
	case "none", "":
		return DirectionNone, true
	}
	return DirectionNone, false
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return fmt.Errorf("unknown swipe direction %q", b)
	}
	*d = v
	return nil
}

// directionOf returns right for positive dx and left otherwise.
func directionOf(dx float64) Direction {
	if dx > 0 {
		return DirectionRight
	}
	return DirectionLeft
}

// Metrics is the motion snapshot derived on every Move.
// Velocity is in pixels per second, Angle in degrees.
type Metrics struct {
	Position  mgl64.Vec2
	Velocity  mgl64.Vec2
	Delta     mgl64.Vec2
	Distance  float64
	Angle     float64
	Timestamp time.Time
}

// Result describes a committed swipe. It is handed to the commit callback
// once and not retained by the engine.
type Result struct {
	Direction Direction     `json:"direction"`
	Distance  float64       `json:"distance"`
	Velocity  float64       `json:"velocity"` // magnitude of the velocity vector
	Duration  time.Duration `json:"duration_ns"`
	Frames    int           `json:"frames"` // heartbeat frames observed during the gesture
}

// Offset is the visual transform a host applies to the dragged card.
type Offset struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
}

// RestOffset is the transform of a card at rest.
var RestOffset = Offset{Scale: 1}
