// Package harness provides conformance testing for the swipe engine.
//
// The harness drives a real swipe.Engine through a scripted pointer stream,
// on a manual clock, a recording haptic sink and a manual frame scheduler,
// then validates per-step expectations and whole-scenario assertions.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: quick_flick_right
//	description: "A short fast flick commits through velocity escape"
//	config:
//	  velocityEscape: 400
//	steps:
//	  - op: start
//	    x: 0
//	    y: 0
//	  - op: move
//	    x: 30
//	    y: 0
//	    after_ms: 20
//	    expect:
//	      state: committing
//	      haptics: [heavy]
//	  - op: end
//	    expect:
//	      committed: true
//	      direction: right
//	assertions:
//	  - type: state_sequence
//	    states: [idle, committing, committed]
//	  - type: result
//	    result: { committed: true, direction: right, distance: 30 }
//
// Step ops are start, move, end, cancel and frame. after_ms advances the
// clock before the op runs; frame flushes `frames` pending frame callbacks.
//
// # Assertion Types
//
//   - final_state: the engine state after the last step
//   - state_sequence: the distinct states observed after each step, in order
//   - haptics: every pulse emitted during the scenario, in order
//   - result: the outcome of the last end step
//   - commit_count: how many gestures committed
//
// # Determinism
//
// Every finished gesture is recorded and replayed on a fresh engine; a
// replay that diverges fails the scenario. Golden files compare the
// canonical JSON trace (testdata/golden/<name>.golden).
package harness
