package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/pawswipe/internal/swipe"
	"github.com/roach88/pawswipe/internal/trace"
)

// marshalJSON encodes v without HTML escaping. encoding/json prints floats in
// shortest round-trip form, so unmarshalling yields the identical float64.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

func marshalConfig(cfg swipe.Config) (string, error) {
	s, err := marshalJSON(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return s, nil
}

func marshalSamples(samples []trace.Sample) (string, error) {
	if samples == nil {
		samples = []trace.Sample{}
	}
	s, err := marshalJSON(samples)
	if err != nil {
		return "", fmt.Errorf("marshal samples: %w", err)
	}
	return s, nil
}

func unmarshalConfig(data string) (swipe.Config, error) {
	var cfg swipe.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return swipe.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func unmarshalSamples(data string) ([]trace.Sample, error) {
	samples := []trace.Sample{}
	if data == "" || data == "[]" {
		return samples, nil
	}
	if err := json.Unmarshal([]byte(data), &samples); err != nil {
		return nil, fmt.Errorf("unmarshal samples: %w", err)
	}
	return samples, nil
}
