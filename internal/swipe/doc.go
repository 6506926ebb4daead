// Package swipe implements the gesture-driven swipe interaction engine.
//
// The engine converts a stream of pointer positions into continuous motion
// metrics and a discrete classification of user intent:
//
//	idle -> engaged -> intent -> committing -> committed
//
// A host (the card UI) forwards pointer coordinates through Start, Move and
// End/Cancel. The engine reports every Move through the state-change callback
// and reports a completed swipe once through the commit callback.
//
// CLASSIFICATION:
//
// Move evaluates rules top to bottom, first match wins:
//  1. |velocityX| > VelocityEscape and distance > EngageThreshold: committing
//  2. distance >= CommitThreshold: committing
//  3. distance >= IntentThreshold: intent (unless already intent or committing)
//  4. distance >= EngageThreshold: engaged (only from idle)
//  5. otherwise the state is unchanged
//
// States only escalate within a gesture. Shrinking distance never demotes a
// state; only Cancel or End return the engine to idle.
//
// COLLABORATORS:
//
// Haptics, Clock and FrameScheduler are injected. Defaults are no-op haptics,
// the system clock and a no-op frame scheduler, so the classification logic
// runs without any host environment.
//
// An Engine is driven by one goroutine at a time. Frame callbacks must be
// delivered on that same goroutine.
package swipe
