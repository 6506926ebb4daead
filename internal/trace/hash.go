package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/pawswipe/internal/swipe"
)

// DomainGesture prefixes gesture hashes. The version suffix allows a future
// algorithm migration.
const DomainGesture = "pawswipe/gesture/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// GestureID computes the content-addressed ID of a recording at its log
// position seq. Samples are relative to the gesture start, so seq keeps two
// identical gestures in one session apart. The outcome is excluded: it is a
// function of the other fields.
func GestureID(rec Recording, seq int64) (string, error) {
	samples := make([]any, len(rec.Samples))
	for i, s := range rec.Samples {
		samples[i] = map[string]any{
			"op":    string(s.Op),
			"x":     s.X,
			"y":     s.Y,
			"at_ns": s.AtNanos,
		}
	}

	obj := map[string]any{
		"session_id": rec.SessionID,
		"card_id":    rec.CardID,
		"config":     configValue(rec.Config),
		"samples":    samples,
		"seq":        seq,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("GestureID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainGesture, canonical), nil
}

// MustGestureID is like GestureID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustGestureID(rec Recording, seq int64) string {
	id, err := GestureID(rec, seq)
	if err != nil {
		panic(err)
	}
	return id
}

func configValue(c swipe.Config) map[string]any {
	return map[string]any{
		"engageThreshold": c.EngageThreshold,
		"intentThreshold": c.IntentThreshold,
		"commitThreshold": c.CommitThreshold,
		"velocityEscape":  c.VelocityEscape,
		"overscrollClamp": c.OverscrollClamp,
		"springConfig": map[string]any{
			"stiffness": c.Spring.Stiffness,
			"damping":   c.Spring.Damping,
			"mass":      c.Spring.Mass,
		},
	}
}
