package swipe

import "fmt"

// SpringConfig holds the physical parameters handed to the host's animation
// layer for settle and release animations. The engine only carries it.
type SpringConfig struct {
	Stiffness float64 `json:"stiffness" yaml:"stiffness"`
	Damping   float64 `json:"damping" yaml:"damping"`
	Mass      float64 `json:"mass" yaml:"mass"`
}

// Config holds the immutable tuning parameters of an Engine.
//
// Thresholds are in pixels, VelocityEscape in pixels per second.
// The classification assumes EngageThreshold <= IntentThreshold <= CommitThreshold
// but does not enforce it. Use Check to surface misconfiguration.
type Config struct {
	EngageThreshold float64      `json:"engageThreshold" yaml:"engageThreshold"`
	IntentThreshold float64      `json:"intentThreshold" yaml:"intentThreshold"`
	CommitThreshold float64      `json:"commitThreshold" yaml:"commitThreshold"`
	VelocityEscape  float64      `json:"velocityEscape" yaml:"velocityEscape"`
	Spring          SpringConfig `json:"springConfig" yaml:"springConfig"`
	OverscrollClamp float64      `json:"overscrollClamp" yaml:"overscrollClamp"`
}

// Default tuning values.
const (
	DefaultEngageThreshold = 15
	DefaultIntentThreshold = 80
	DefaultCommitThreshold = 150
	DefaultVelocityEscape  = 500
	DefaultStiffness       = 350
	DefaultDamping         = 30
	DefaultMass            = 1
	DefaultOverscrollClamp = 1.5
)

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		EngageThreshold: DefaultEngageThreshold,
		IntentThreshold: DefaultIntentThreshold,
		CommitThreshold: DefaultCommitThreshold,
		VelocityEscape:  DefaultVelocityEscape,
		Spring: SpringConfig{
			Stiffness: DefaultStiffness,
			Damping:   DefaultDamping,
			Mass:      DefaultMass,
		},
		OverscrollClamp: DefaultOverscrollClamp,
	}
}

// Overrides is a partial Config. Nil fields keep the base value.
// The spring configuration is replaced as a whole (shallow merge).
type Overrides struct {
	EngageThreshold *float64      `json:"engageThreshold,omitempty" yaml:"engageThreshold,omitempty"`
	IntentThreshold *float64      `json:"intentThreshold,omitempty" yaml:"intentThreshold,omitempty"`
	CommitThreshold *float64      `json:"commitThreshold,omitempty" yaml:"commitThreshold,omitempty"`
	VelocityEscape  *float64      `json:"velocityEscape,omitempty" yaml:"velocityEscape,omitempty"`
	Spring          *SpringConfig `json:"springConfig,omitempty" yaml:"springConfig,omitempty"`
	OverscrollClamp *float64      `json:"overscrollClamp,omitempty" yaml:"overscrollClamp,omitempty"`
}

// Merge returns c with every set field of o applied.
func (c Config) Merge(o Overrides) Config {
	if o.EngageThreshold != nil {
		c.EngageThreshold = *o.EngageThreshold
	}
	if o.IntentThreshold != nil {
		c.IntentThreshold = *o.IntentThreshold
	}
	if o.CommitThreshold != nil {
		c.CommitThreshold = *o.CommitThreshold
	}
	if o.VelocityEscape != nil {
		c.VelocityEscape = *o.VelocityEscape
	}
	if o.Spring != nil {
		c.Spring = *o.Spring
	}
	if o.OverscrollClamp != nil {
		c.OverscrollClamp = *o.OverscrollClamp
	}
	return c
}

// NewConfig merges o onto DefaultConfig.
func NewConfig(o Overrides) Config {
	return DefaultConfig().Merge(o)
}

// Severity classifies a configuration Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a configuration problem found by Check.
type Issue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

// Check reports non-positive parameters as errors and threshold ordering
// gaps as warnings. It never modifies the config.
func (c Config) Check() []Issue {
	var issues []Issue

	positive := []struct {
		field string
		value float64
	}{
		{"engageThreshold", c.EngageThreshold},
		{"intentThreshold", c.IntentThreshold},
		{"commitThreshold", c.CommitThreshold},
		{"velocityEscape", c.VelocityEscape},
		{"springConfig.stiffness", c.Spring.Stiffness},
		{"springConfig.damping", c.Spring.Damping},
		{"springConfig.mass", c.Spring.Mass},
		{"overscrollClamp", c.OverscrollClamp},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			issues = append(issues, Issue{
				Field:    p.field,
				Message:  fmt.Sprintf("must be positive, got %v", p.value),
				Severity: SeverityError,
			})
		}
	}

	if c.EngageThreshold > c.IntentThreshold {
		issues = append(issues, Issue{
			Field:    "intentThreshold",
			Message:  fmt.Sprintf("intent threshold %v is below engage threshold %v", c.IntentThreshold, c.EngageThreshold),
			Severity: SeverityWarning,
		})
	}
	if c.IntentThreshold > c.CommitThreshold {
		issues = append(issues, Issue{
			Field:    "commitThreshold",
			Message:  fmt.Sprintf("commit threshold %v is below intent threshold %v", c.CommitThreshold, c.IntentThreshold),
			Severity: SeverityWarning,
		})
	}

	return issues
}
