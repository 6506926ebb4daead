// Package trace records swipe gestures and replays them deterministically.
//
// A Recorder sits between a host and a swipe.Engine. It doubles as the
// engine's clock so every sample carries exactly the timestamp the engine
// used, which makes Replay reproduce velocities bit for bit.
//
// Gesture identity is content-addressed: GestureID hashes the canonical JSON
// of the session, card, config and samples with domain separation. The
// outcome is derived data and is not part of the identity.
package trace
