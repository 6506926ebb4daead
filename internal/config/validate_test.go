package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pawswipe/internal/swipe"
)

func TestValidate_Defaults(t *testing.T) {
	issues, err := Validate(swipe.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.NotNil(t, issues)
}

func TestValidate_NonPositiveAreErrors(t *testing.T) {
	p, err := LoadProfile(filepath.Join("testdata", "broken.yaml"))
	require.NoError(t, err)

	issues, err := Validate(p.Config())
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "engageThreshold", issues[0].Field)
	assert.Equal(t, swipe.SeverityError, issues[0].Severity)
	assert.Equal(t, "overscrollClamp", issues[1].Field)
	assert.True(t, HasErrors(issues))
}

func TestValidate_OrderingIsWarning(t *testing.T) {
	p, err := LoadProfile(filepath.Join("testdata", "misordered.yaml"))
	require.NoError(t, err)

	issues, err := Validate(p.Config())
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "commitThreshold", issues[0].Field)
	assert.Equal(t, swipe.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "200")
	assert.False(t, HasErrors(issues))
}

func TestValidate_EngageAboveIntentFlagsOnlyIntent(t *testing.T) {
	cfg := swipe.DefaultConfig()
	cfg.EngageThreshold = 100

	issues, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, issues, 1, "commit 150 >= intent 80 still holds")
	assert.Equal(t, "intentThreshold", issues[0].Field)
	assert.Equal(t, swipe.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "intentThreshold 80 is below engageThreshold 100", issues[0].Message)
}

func TestValidate_FullyReversedFlagsBothPairs(t *testing.T) {
	cfg := swipe.DefaultConfig()
	cfg.EngageThreshold, cfg.IntentThreshold, cfg.CommitThreshold = 150, 80, 15

	issues, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "intentThreshold 80 is below engageThreshold 150", issues[0].Message)
	assert.Equal(t, "commitThreshold 15 is below intentThreshold 80", issues[1].Message)
}

// The CUE schema and swipe.Config.Check must agree on every field.
func TestValidate_AgreesWithCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*swipe.Config)
	}{
		{"defaults", func(*swipe.Config) {}},
		{"zero engage", func(c *swipe.Config) { c.EngageThreshold = 0 }},
		{"negative velocity", func(c *swipe.Config) { c.VelocityEscape = -500 }},
		{"zero spring", func(c *swipe.Config) { c.Spring = swipe.SpringConfig{} }},
		{"engage above intent", func(c *swipe.Config) { c.EngageThreshold = 100 }},
		{"fully reversed", func(c *swipe.Config) {
			c.EngageThreshold, c.IntentThreshold, c.CommitThreshold = 150, 80, 15
		}},
		{"error and warning", func(c *swipe.Config) {
			c.CommitThreshold = -1
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := swipe.DefaultConfig()
			tt.mutate(&cfg)

			got, err := Validate(cfg)
			require.NoError(t, err)
			want := cfg.Check()

			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].Field, got[i].Field)
				assert.Equal(t, want[i].Severity, got[i].Severity)
			}
		})
	}
}
