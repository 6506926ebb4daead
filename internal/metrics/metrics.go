// Package metrics provides swipe deck telemetry.
// It wraps Prometheus collectors on a private registry so several decks (or
// tests) never collide on the global default registry.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/roach88/pawswipe/internal/swipe"
)

// Gesture outcomes.
const (
	OutcomeCommitted = "committed"
	OutcomeAbandoned = "abandoned"
	OutcomeCancelled = "cancelled"
)

// Collector records gesture, decision and animation metrics.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	gestures    *prometheus.CounterVec
	stateEntry  *prometheus.CounterVec
	decisions   *prometheus.CounterVec
	distance    prometheus.Histogram
	velocity    prometheus.Histogram
	duration    prometheus.Histogram
	frames      prometheus.Counter
	animFrames  *prometheus.HistogramVec
	storeErrors prometheus.Counter
}

// NewCollector creates a collector. namespace defaults to "pawswipe".
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "pawswipe"
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.gestures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gesture",
			Name:      "total",
			Help:      "Finished gestures by outcome (committed, abandoned, cancelled)",
		},
		[]string{"outcome"},
	)

	c.stateEntry = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gesture",
			Name:      "state_entries_total",
			Help:      "Transitions into each swipe state",
		},
		[]string{"state"},
	)

	c.decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deck",
			Name:      "decisions_total",
			Help:      "Card decisions by action (like, pass)",
		},
		[]string{"action"},
	)

	c.distance = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "commit",
		Name:      "distance_pixels",
		Help:      "Drag distance at commit",
		Buckets:   prometheus.LinearBuckets(25, 25, 12), // 25px to 300px
	})

	c.velocity = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "commit",
		Name:      "velocity_pixels_per_second",
		Help:      "Release velocity at commit",
		Buckets:   prometheus.ExponentialBuckets(50, 2, 9), // 50 to 12800 px/s
	})

	c.duration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "commit",
		Name:      "duration_seconds",
		Help:      "Gesture duration from start to commit",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms to 6.4s
	})

	c.frames = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gesture",
		Name:      "frames_total",
		Help:      "Frames observed while gestures were active",
	})

	c.animFrames = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "animation",
			Name:      "frames",
			Help:      "Frames per spring animation",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		},
		[]string{"kind"},
	)

	c.storeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "errors_total",
		Help:      "Failed gesture log writes",
	})

	c.registry.MustRegister(
		c.gestures,
		c.stateEntry,
		c.decisions,
		c.distance,
		c.velocity,
		c.duration,
		c.frames,
		c.animFrames,
		c.storeErrors,
	)
	return c
}

// Registry returns the private registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordGesture counts a finished gesture.
func (c *Collector) RecordGesture(outcome string) {
	if c == nil {
		return
	}
	c.gestures.WithLabelValues(outcome).Inc()
}

// RecordStateEntry counts a transition into s.
func (c *Collector) RecordStateEntry(s swipe.State) {
	if c == nil {
		return
	}
	c.stateEntry.WithLabelValues(s.String()).Inc()
}

// RecordDecision counts a card decision.
func (c *Collector) RecordDecision(action string) {
	if c == nil {
		return
	}
	c.decisions.WithLabelValues(action).Inc()
}

// RecordCommit observes the shape of a committed gesture.
func (c *Collector) RecordCommit(res swipe.Result) {
	if c == nil {
		return
	}
	c.distance.Observe(res.Distance)
	c.velocity.Observe(res.Velocity)
	c.duration.Observe(res.Duration.Seconds())
	c.frames.Add(float64(res.Frames))
}

// RecordAnimation observes the frame count of a settle or fling.
func (c *Collector) RecordAnimation(kind string, frames int) {
	if c == nil {
		return
	}
	c.animFrames.WithLabelValues(kind).Observe(float64(frames))
}

// RecordStoreError counts a failed gesture log write.
func (c *Collector) RecordStoreError() {
	if c == nil {
		return
	}
	c.storeErrors.Inc()
}

// WriteText writes every metric in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
