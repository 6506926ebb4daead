// Package store provides SQLite-backed durable storage for swipe gesture logs.
//
// The store is an append-only log with:
//   - Gestures: recorded samples, the config they ran under and the outcome
//   - Decisions: like/pass verdicts derived from committed gestures
//
// # Invariants
//
// Content-addressed identity
//   - gestures.id is trace.GestureID of the recording
//   - Writing the same gesture twice is a no-op
//
// Logical ordering
//   - All ordering uses seq INTEGER (logical clock), never timestamps
//   - All list queries use ORDER BY seq ASC, id ASC COLLATE BINARY
//
// Exact replay
//   - Samples and config are stored as JSON with shortest round-trip floats
//   - Outcome floats are REAL columns, which hold float64 exactly
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
