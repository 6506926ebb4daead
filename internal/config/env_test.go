package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadSettings_Defaults(t *testing.T) {
	unsetEnv(t, "PAWSWIPE_DB")
	unsetEnv(t, "PAWSWIPE_LOG_LEVEL")
	unsetEnv(t, "PAWSWIPE_PROFILE")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Settings{LogLevel: "info"}, s)
}

func TestLoadSettings_FromEnvironment(t *testing.T) {
	t.Setenv("PAWSWIPE_DB", "/tmp/gestures.db")
	t.Setenv("PAWSWIPE_LOG_LEVEL", "debug")
	t.Setenv("PAWSWIPE_PROFILE", "snappy.yaml")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/gestures.db", s.DB)
	assert.Equal(t, "snappy.yaml", s.Profile)

	level, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadSettings_EnvFile(t *testing.T) {
	unsetEnv(t, "PAWSWIPE_DB")
	unsetEnv(t, "PAWSWIPE_PROFILE")
	t.Setenv("PAWSWIPE_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PAWSWIPE_DB=deck.db\nPAWSWIPE_LOG_LEVEL=error\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "deck.db", s.DB)
	assert.Equal(t, "warn", s.LogLevel, "environment wins over the file")
}

func TestSettings_LevelInvalid(t *testing.T) {
	_, err := Settings{LogLevel: "loud"}.Level()
	assert.Error(t, err)
}
