package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pawswipe/internal/spring"
	"github.com/roach88/pawswipe/internal/swipe"
)

func TestSettle_ReturnsToRest(t *testing.T) {
	out, err := execute(t, "settle", "--x", "120", "--format", "json")
	require.NoError(t, err, out)

	var result SettleResult
	decodeData(t, out, &result)
	assert.Equal(t, "settle", result.Kind)
	assert.Equal(t, spring.DefaultFPS, result.FPS)
	assert.InDelta(t, 120, result.From.X, 1e-9)
	assert.InDelta(t, 12, result.From.Rotation, 1e-9)
	assert.InDelta(t, 0.92, result.From.Scale, 1e-9)

	require.NotEmpty(t, result.Frames)
	assert.Equal(t, swipe.RestOffset, result.Frames[len(result.Frames)-1])
}

func TestSettle_Fling(t *testing.T) {
	out, err := execute(t, "settle", "--x", "-180", "--fling", "left", "--distance", "500", "--format", "json")
	require.NoError(t, err, out)

	var result SettleResult
	decodeData(t, out, &result)
	assert.Equal(t, "fling", result.Kind)
	require.NotEmpty(t, result.Frames)
	last := result.Frames[len(result.Frames)-1]
	assert.Equal(t, -500.0, last.X)
	assert.Equal(t, -spring.FlingRotation, last.Rotation)
}

func TestSettle_InvalidFling(t *testing.T) {
	_, err := execute(t, "settle", "--fling", "up")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSettle_ProfileText(t *testing.T) {
	out, err := execute(t, "settle", "--x", "60", "--profile", filepath.Join(profilesDir, "snappy.yaml"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "settle from x=60.00")
}

func TestSettle_BrokenThresholdsKeepDefaultSpring(t *testing.T) {
	// broken.yaml only breaks thresholds; the spring keeps its defaults.
	out, err := execute(t, "settle", "--x", "60", "--profile", filepath.Join(profilesDir, "broken.yaml"))
	require.NoError(t, err, out)
}

func TestSettle_MissingProfile(t *testing.T) {
	_, err := execute(t, "settle", "--profile", "nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
