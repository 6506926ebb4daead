package deck

import (
	"errors"

	"github.com/roach88/pawswipe/internal/swipe"
)

// ErrDeckEmpty is returned when a gesture starts with no card left.
var ErrDeckEmpty = errors.New("deck is empty")

// Card is one pet profile in the deck.
type Card struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Action is the verdict on a card.
type Action string

const (
	ActionLike Action = "like"
	ActionPass Action = "pass"
)

// ActionFor maps a commit direction to its action.
func ActionFor(d swipe.Direction) (Action, bool) {
	switch d {
	case swipe.DirectionRight:
		return ActionLike, true
	case swipe.DirectionLeft:
		return ActionPass, true
	default:
		return "", false
	}
}

// Decision is emitted once per committed gesture.
type Decision struct {
	SessionID string       `json:"session_id"`
	Card      Card         `json:"card"`
	Action    Action       `json:"action"`
	GestureID string       `json:"gesture_id"`
	Seq       int64        `json:"seq"`
	Result    swipe.Result `json:"result"`
}

// Animation kinds.
const (
	AnimationSettle = "settle"
	AnimationFling  = "fling"
)

// Animation is the spring motion played after a gesture.
type Animation struct {
	Kind   string         `json:"kind"`
	Frames []swipe.Offset `json:"frames"`
}
