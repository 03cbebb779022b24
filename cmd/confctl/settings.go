package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/joshuapare/confkit/internal/logging"
)

// Settings are optional defaults read from the user's confctl.toml.
type Settings struct {
	// DefaultFormat is used when neither a flag nor the file extension
	// decides the format.
	DefaultFormat string `toml:"default_format"`
	// LogLevel names the minimum log level (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
	// NoColor disables colored output without passing --no-color.
	NoColor bool `toml:"no_color"`
}

// settingsPath returns the per-user settings file location, or "" when
// the user config directory cannot be resolved.
func settingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "confctl", "confctl.toml")
}

// loadSettings reads the settings file. A missing file or unreadable
// content yields zero settings; the CLI must work without any setup.
func loadSettings() Settings {
	var s Settings
	path := settingsPath()
	if path == "" {
		return s
	}
	if _, err := os.Stat(path); err != nil {
		return s
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("ignoring malformed settings file")
		return Settings{}
	}
	return s
}
