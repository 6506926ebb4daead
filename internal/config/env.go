package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Settings are host defaults read from the environment. Command-line flags
// take precedence over them.
type Settings struct {
	// DB is the SQLite gesture log path.
	DB string `env:"PAWSWIPE_DB"`

	// LogLevel is a slog level name: debug, info, warn or error.
	LogLevel string `env:"PAWSWIPE_LOG_LEVEL,default=info"`

	// Profile is the default tuning profile path.
	Profile string `env:"PAWSWIPE_PROFILE"`
}

// LoadSettings reads Settings from the environment after loading each of
// envFiles that exists. Variables already set in the environment win over
// file values.
func LoadSettings(envFiles ...string) (Settings, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	var s Settings
	if err := envdecode.Decode(&s); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Settings{}, fmt.Errorf("decode environment: %w", err)
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	return s, nil
}

// Level parses LogLevel.
func (s Settings) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	return l, nil
}
