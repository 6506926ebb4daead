// Package deck hosts a swipe.Engine over a queue of pet cards.
//
// The Deck translates pointer events into engine calls, keeps the card's
// visual offset in sync with the engine and turns committed gestures into
// decisions: a right swipe likes the card, a left swipe passes it. Every
// finished gesture is recorded with a trace.Recorder and, when a store is
// configured, appended to the SQLite gesture log.
//
// # Pointer rules
//
// Only one pointer drives a gesture. A second pointer going down while the
// first is active cancels the gesture; the card settles back and the first
// pointer's remaining events are ignored until it lifts.
//
// # Concurrency
//
// Like the engine, a Deck is driven from a single goroutine. Hosts that
// receive input on several goroutines wrap it in a Loop: Enqueue is safe from
// any goroutine and Run applies events in order on one.
package deck
